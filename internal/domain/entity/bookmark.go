package entity

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark is a city a user has saved for later. Each user can bookmark a
// given city at most once.
type Bookmark struct {
	ID          uuid.UUID // The unique ID for this bookmark record.
	UserID      uuid.UUID // Links the bookmark to the User who saved it.
	City        string    // The bookmarked city name, as shown to the user.
	Country     string    // The country the city belongs to, free-form.
	Emoji       string    // A decorative emoji the frontend renders next to the city.
	Description string    // Short blurb about the city.
	Price       string    // Rough price indication, free-form (e.g. "$$", "NT$30,000").
	Tags        []string  // Free-form tags such as "food" or "beach".
	CreatedAt   time.Time // Timestamp of when the bookmark was saved.
}
