package postgres

import (
	"context"

	"voyage/internal/domain/entity"
	domainerrors "voyage/internal/domain/errors"
	"voyage/internal/domain/repository"
	"voyage/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// bookmarkRepository implements the domain.BookmarkRepository interface using GORM.
type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository is the constructor for bookmarkRepository.
func NewBookmarkRepository(db *gorm.DB) repository.BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// Create persists a new bookmark. The database's composite unique index on
// (user_id, city) turns duplicates into ErrBookmarkDuplicate.
func (repo *bookmarkRepository) Create(ctx context.Context, bookmark *entity.Bookmark) error {
	bookmarkM := fromBookmarkDomain(bookmark)

	if err := repo.db.WithContext(ctx).Create(bookmarkM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrBookmarkDuplicate
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create bookmark")
	}

	bookmark.ID = bookmarkM.ID
	bookmark.CreatedAt = bookmarkM.CreatedAt

	return nil
}

// ListByUser retrieves all bookmarks belonging to one user, newest first.
func (repo *bookmarkRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Bookmark, error) {
	var models []model.BookmarkModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list bookmarks")
	}

	bookmarks := make([]*entity.Bookmark, 0, len(models))
	for i := range models {
		bookmarks = append(bookmarks, toBookmarkDomain(&models[i]))
	}

	return bookmarks, nil
}

// Delete removes a bookmark owned by the given user. Scoping the delete by
// user id keeps one user from removing another's bookmarks.
func (repo *bookmarkRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.BookmarkModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete bookmark")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookmarkNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toBookmarkDomain converts a GORM BookmarkModel to a domain Bookmark entity.
func toBookmarkDomain(data *model.BookmarkModel) *entity.Bookmark {
	if data == nil {
		return nil
	}

	return &entity.Bookmark{
		ID:          data.ID,
		UserID:      data.UserID,
		City:        data.City,
		Country:     data.Country,
		Emoji:       data.Emoji,
		Description: data.Description,
		Price:       data.Price,
		Tags:        data.Tags,
		CreatedAt:   data.CreatedAt,
	}
}

// fromBookmarkDomain converts a domain Bookmark entity to a GORM BookmarkModel.
func fromBookmarkDomain(data *entity.Bookmark) *model.BookmarkModel {
	if data == nil {
		return nil
	}

	return &model.BookmarkModel{
		ID:          data.ID,
		UserID:      data.UserID,
		City:        data.City,
		Country:     data.Country,
		Emoji:       data.Emoji,
		Description: data.Description,
		Price:       data.Price,
		Tags:        data.Tags,
		CreatedAt:   data.CreatedAt,
	}
}
