package models

import "time"

// CartItem is one (student, menu item) line in the pre-checkout cart.
// Quantity is always >= 1; removal is an explicit delete, never quantity 0.
type CartItem struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	StudentID  uint     `gorm:"not null;uniqueIndex:idx_cart_student_item" json:"student_id"`
	Student    User     `gorm:"foreignKey:StudentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint     `gorm:"not null;uniqueIndex:idx_cart_student_item" json:"menu_item_id"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"menu_item"`
	Quantity   int      `gorm:"not null;default:1" json:"quantity"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
