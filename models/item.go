package models

import "time"

const displayDescriptionLimit = 80

// Item is a catalog entry. Every item belongs to exactly one category and
// one owning user; only the owner may edit or delete it.
type Item struct {
	ID          uint     `gorm:"primaryKey;autoIncrement"`
	Name        string   `gorm:"size:80;not null"`
	Description string   `gorm:"size:800"`
	ImageURL    string   `gorm:"size:250"`
	CatID       uint     `gorm:"not null"`
	Category    Category `gorm:"foreignKey:CatID"`
	UserID      uint     `gorm:"not null"`
	User        User     `gorm:"foreignKey:UserID"`
	CreatedAt   time.Time
}

// ItemView is the JSON projection of an item. The description is never
// truncated here.
type ItemView struct {
	CatID       uint   `json:"cat_id"`
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Serialize projects the item for the JSON API.
func (i Item) Serialize() ItemView {
	return ItemView{
		CatID:       i.CatID,
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
	}
}

// DisplayDescription is the list-view description: at most 80 characters of
// the stored value, with an ellipsis appended when anything was cut. The
// stored value itself is never modified.
func (i Item) DisplayDescription() string {
	runes := []rune(i.Description)
	if len(runes) <= displayDescriptionLimit {
		return i.Description
	}
	return string(runes[:displayDescriptionLimit]) + "..."
}
