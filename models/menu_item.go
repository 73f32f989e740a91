package models

import "time"

const (
	CategoryMainCourse = "main_course"
	CategoryFastFood   = "fast_food"
	CategoryBreakfast  = "breakfast"
	CategoryDessert    = "dessert"
)

// ValidCategory reports whether c is one of the known menu categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryMainCourse, CategoryFastFood, CategoryBreakfast, CategoryDessert:
		return true
	}
	return false
}

type MenuItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category     string    `gorm:"type:varchar(50);not null;index" json:"category"`
	IsVegetarian bool      `gorm:"not null;default:false" json:"is_vegetarian"`
	ImageUrl     *string   `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	IsAvailable  bool      `gorm:"not null;default:true" json:"is_available"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
