package models

import "time"

// OrderItem is a checkout-time snapshot of one cart line. PriceAtOrder is
// frozen when the order is created and never follows later menu price changes.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitted from JSON to avoid recursive nesting
	Order        Order    `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID   uint     `gorm:"not null" json:"menu_item_id"`
	MenuItem     MenuItem `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu_item"`
	Quantity     int      `gorm:"not null" json:"quantity"`
	PriceAtOrder float64  `gorm:"type:decimal(10,2);not null" json:"price_at_order"`
	Subtotal     float64  `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
