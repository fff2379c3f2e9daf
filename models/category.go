package models

// Category rows are seeded once at first run and never mutated through any
// exposed route.
type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:250;not null"`
}

// CategoryView is the JSON projection of a category with its nested items.
type CategoryView struct {
	ID    uint       `json:"id"`
	Name  string     `json:"name"`
	Items []ItemView `json:"items"`
}

// Serialize projects the category for the JSON API, keeping only the items
// whose category foreign key matches.
func (c Category) Serialize(items []Item) CategoryView {
	views := []ItemView{}
	for _, item := range items {
		if item.CatID == c.ID {
			views = append(views, item.Serialize())
		}
	}
	return CategoryView{ID: c.ID, Name: c.Name, Items: views}
}
