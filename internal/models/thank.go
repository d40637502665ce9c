package models

import "time"

// Thank records a user's thank mark on a post.
// The combination of UserID and PostID must be unique; rows are hard
// deleted on un-thank so the derived counters stay exact.
type Thank struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_thanks_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_thanks_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Post Post `gorm:"foreignKey:PostID" json:"-"`
}
