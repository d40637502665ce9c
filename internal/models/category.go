package models

// Category is a fixed board section a post belongs to.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
	Icon string `json:"icon,omitempty"`
}

// DefaultCategories is the fixed set seeded when the store is empty, in
// the order clients display them.
var DefaultCategories = []Category{
	{Name: "Events", Icon: "calendar"},
	{Name: "Lost & Found", Icon: "search"},
	{Name: "Services", Icon: "wrench"},
	{Name: "News", Icon: "newspaper"},
	{Name: "For Sale", Icon: "tag"},
	{Name: "Housing", Icon: "home"},
	{Name: "Jobs", Icon: "briefcase"},
	{Name: "Discussion", Icon: "message-circle"},
}

// DefaultLocations is returned by the locations lookup when no posts
// exist yet.
var DefaultLocations = []string{"Erode", "Coimbatore", "Tiruppur", "Salem"}
