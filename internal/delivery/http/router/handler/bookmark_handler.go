package handler

import (
	"log/slog"
	"net/http"
	"time"

	"voyage/internal/delivery/http/middleware"
	"voyage/internal/delivery/http/response"
	"voyage/internal/domain/entity"
	"voyage/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BookmarkHandler holds dependencies for bookmark handlers. All routes sit
// behind the session middleware.
type BookmarkHandler struct {
	uc     usecase.BookmarkUsecase
	logger *slog.Logger
}

// NewBookmarkHandler is the constructor for BookmarkHandler, injected by Fx.
func NewBookmarkHandler(uc usecase.BookmarkUsecase, logger *slog.Logger) *BookmarkHandler {
	return &BookmarkHandler{uc: uc, logger: logger}
}

type createBookmarkRequest struct {
	City        string   `json:"city" validate:"required"`
	Country     string   `json:"country"`
	Emoji       string   `json:"emoji"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Tags        []string `json:"tags"`
}

type bookmarkPayload struct {
	ID          string    `json:"id"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Emoji       string    `json:"emoji"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toBookmarkPayload(bookmark *entity.Bookmark) bookmarkPayload {
	return bookmarkPayload{
		ID:          bookmark.ID.String(),
		City:        bookmark.City,
		Country:     bookmark.Country,
		Emoji:       bookmark.Emoji,
		Description: bookmark.Description,
		Price:       bookmark.Price,
		Tags:        bookmark.Tags,
		CreatedAt:   bookmark.CreatedAt,
	}
}

// sessionUserID reads the user ID placed on the context by the session
// middleware.
func sessionUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)

	return userID, ok
}

// List returns the user's bookmarks, newest first.
func (h *BookmarkHandler) List(c echo.Context) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	bookmarks, err := h.uc.List(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	payload := make([]bookmarkPayload, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		payload = append(payload, toBookmarkPayload(bookmark))
	}

	return response.Success(c, http.StatusOK, payload, "Bookmarks retrieved")
}

// Create saves a new bookmark for the user.
func (h *BookmarkHandler) Create(c echo.Context) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	var input createBookmarkRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid bookmark input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "City is required")
	}

	bookmark, err := h.uc.Create(c.Request().Context(), userID, usecase.CreateBookmarkInput{
		City:        input.City,
		Country:     input.Country,
		Emoji:       input.Emoji,
		Description: input.Description,
		Price:       input.Price,
		Tags:        input.Tags,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toBookmarkPayload(bookmark), "Bookmark created")
}

// Delete removes one of the user's bookmarks.
func (h *BookmarkHandler) Delete(c echo.Context) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	bookmarkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid bookmark id")
	}

	if err := h.uc.Delete(c.Request().Context(), userID, bookmarkID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Bookmark deleted"}, "Bookmark deleted")
}
