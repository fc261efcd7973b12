package model

import (
	"time"

	"github.com/google/uuid"
)

// BookmarkModel mirrors the 'bookmarks' table. The composite unique index
// enforces one bookmark per (user, city) pair at the database level.
type BookmarkModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_city"`
	City        string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_bookmarks_user_city"`
	Country     string    `gorm:"type:varchar(100)"`
	Emoji       string    `gorm:"type:varchar(16)"`
	Description string    `gorm:"type:text"`
	Price       string    `gorm:"type:varchar(100)"`
	Tags        []string  `gorm:"serializer:json;type:jsonb"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (BookmarkModel) TableName() string {
	return "bookmarks"
}
