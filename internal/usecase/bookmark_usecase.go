package usecase

import (
	"context"

	"github.com/google/uuid"

	"voyage/internal/domain/entity"
)

// CreateBookmarkInput defines the data required to bookmark a city.
type CreateBookmarkInput struct {
	City        string
	Country     string
	Emoji       string
	Description string
	Price       string
	Tags        []string
}

// BookmarkUsecase defines the interface for bookmark operations. Every
// operation is scoped to the authenticated user.
type BookmarkUsecase interface {
	// List returns the user's bookmarks, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]*entity.Bookmark, error)

	// Create saves a new bookmark. Bookmarking the same city twice fails
	// with a conflict error.
	Create(ctx context.Context, userID uuid.UUID, input CreateBookmarkInput) (*entity.Bookmark, error)

	// Delete removes one of the user's bookmarks.
	Delete(ctx context.Context, userID, bookmarkID uuid.UUID) error
}
