package repository

import (
	"context"
	"errors"

	"voyage/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for bookmark persistence.
var (
	// ErrBookmarkNotFound is returned when a bookmark is not found.
	ErrBookmarkNotFound = errors.New("bookmark not found")
	// ErrBookmarkDuplicate is returned when the user has already bookmarked the city.
	ErrBookmarkDuplicate = errors.New("bookmark already exists")
)

// BookmarkRepository defines the standard operations for bookmark persistence.
type BookmarkRepository interface {
	// Create persists a new bookmark. Returns ErrBookmarkDuplicate when the
	// user already bookmarked the same city.
	Create(ctx context.Context, bookmark *entity.Bookmark) error

	// ListByUser retrieves all bookmarks belonging to one user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Bookmark, error)

	// Delete removes a bookmark owned by the given user. Returns
	// ErrBookmarkNotFound when no such bookmark exists for that user.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
