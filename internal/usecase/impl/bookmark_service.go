package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "voyage/internal/delivery/context"
	"voyage/internal/domain/entity"
	domainerrors "voyage/internal/domain/errors"
	"voyage/internal/domain/repository"
	"voyage/internal/usecase"
)

// bookmarkService implements the BookmarkUsecase interface.
type bookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	logger       *slog.Logger
}

// BookmarkServiceParams holds dependencies for bookmarkService, injected by Fx.
type BookmarkServiceParams struct {
	fx.In

	BookmarkRepo repository.BookmarkRepository
	Logger       *slog.Logger
}

// NewBookmarkService is the constructor for bookmarkService.
func NewBookmarkService(params BookmarkServiceParams) usecase.BookmarkUsecase {
	return &bookmarkService{
		bookmarkRepo: params.BookmarkRepo,
		logger:       params.Logger,
	}
}

func (srv *bookmarkService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the user's bookmarks, newest first.
func (srv *bookmarkService) List(ctx context.Context, userID uuid.UUID) ([]*entity.Bookmark, error) {
	bookmarks, err := srv.bookmarkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list bookmarks")
	}

	return bookmarks, nil
}

// Create saves a new bookmark for the user.
func (srv *bookmarkService) Create(ctx context.Context, userID uuid.UUID, input usecase.CreateBookmarkInput) (*entity.Bookmark, error) {
	city := strings.TrimSpace(input.City)
	if city == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("city is required")
	}

	bookmark := &entity.Bookmark{
		UserID:      userID,
		City:        city,
		Country:     strings.TrimSpace(input.Country),
		Emoji:       input.Emoji,
		Description: input.Description,
		Price:       input.Price,
		Tags:        input.Tags,
	}

	if err := srv.bookmarkRepo.Create(ctx, bookmark); err != nil {
		if errors.Is(err, repository.ErrBookmarkDuplicate) {
			srv.log(ctx).Info("Duplicate bookmark rejected",
				slog.Any("userID", userID),
				slog.String("city", city),
			)

			return nil, domainerrors.ErrBookmarkAlreadyExists
		}

		return nil, err
	}

	return bookmark, nil
}

// Delete removes one of the user's bookmarks.
func (srv *bookmarkService) Delete(ctx context.Context, userID, bookmarkID uuid.UUID) error {
	if err := srv.bookmarkRepo.Delete(ctx, userID, bookmarkID); err != nil {
		if errors.Is(err, repository.ErrBookmarkNotFound) {
			return domainerrors.ErrBookmarkNotFound
		}

		return err
	}

	return nil
}
