package models

type Category struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"unique;not null" json:"name"`
	Slug     string    `gorm:"uniqueIndex;not null" json:"slug"`
	Image    string    `json:"image"`
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}
