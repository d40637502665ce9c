package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultAvatar is used for authors without an avatar and for the
// placeholder identity of posts whose author no longer resolves.
const DefaultAvatar = "/avatars/default.png"

// UnknownAuthor is the placeholder username shown when a post's author
// cannot be resolved at read time.
const UnknownAuthor = "Unknown User"

// Post represents a notice published on the board.
// ThankCount and ThankedByUser are not persisted; they are computed at
// query time from the thanks table so the count can never drift from the
// underlying set.
type Post struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"not null" json:"title"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	Category      string         `gorm:"not null;index" json:"category"`
	Location      string         `gorm:"not null;index" json:"location"`
	UserID        uint           `gorm:"not null;index" json:"userId"`
	User          User           `gorm:"foreignKey:UserID" json:"user"`
	ThankCount    int            `gorm:"->" json:"thankCount"`
	ThankedByUser bool           `gorm:"->" json:"thankedByUser"`
	CreatedAt     time.Time      `json:"date"`
	UpdatedAt     time.Time      `json:"-"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Author is the public snapshot of a post author embedded in a PostView.
type Author struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// PostView is the read-facing projection of a Post joined with its
// author's public profile fields.
type PostView struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Category      string    `json:"category"`
	Location      string    `json:"location"`
	Date          time.Time `json:"date"`
	UserID        uint      `json:"userId"`
	Author        Author    `json:"author"`
	ThankCount    int       `json:"thankCount"`
	Comments      int       `json:"comments"`
	ThankedByUser bool      `json:"thankedByUser"`
}

// View builds the PostView projection. The author snapshot is joined at
// read time; a missing author row yields the placeholder identity instead
// of an error. Comments are modeled but unimplemented, so the counter is
// always zero.
func (p *Post) View() PostView {
	author := Author{
		Username: p.User.Username,
		Avatar:   p.User.Avatar,
	}
	if p.User.ID == 0 {
		author.Username = UnknownAuthor
		author.Avatar = DefaultAvatar
	} else if author.Avatar == "" {
		author.Avatar = DefaultAvatar
	}

	return PostView{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Category:      p.Category,
		Location:      p.Location,
		Date:          p.CreatedAt,
		UserID:        p.UserID,
		Author:        author,
		ThankCount:    p.ThankCount,
		Comments:      0,
		ThankedByUser: p.ThankedByUser,
	}
}

// Views maps a slice of posts to their projections.
func Views(posts []*Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, p.View())
	}
	return views
}
