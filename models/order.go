package models

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

const (
	PaymentMethodUPI      = "upi"
	PaymentMethodCard     = "card"
	PaymentMethodRazorpay = "razorpay"
)

// ValidPaymentMethod reports whether m is a supported payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodUPI, PaymentMethodCard, PaymentMethodRazorpay:
		return true
	}
	return false
}

// Order is immutable after checkout except for status, payment_status,
// completed_at and updated_at.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	OrderNumber   string      `gorm:"type:varchar(40);unique;not null" json:"order_number"`
	StudentID     uint        `gorm:"not null;index" json:"student_id"`
	Student       User        `gorm:"foreignKey:StudentID;references:ID" json:"-"`
	Status        string      `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Subtotal      float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"subtotal"`
	Tax           float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"tax"`
	Total         float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	PaymentMethod string      `gorm:"type:varchar(20);not null;default:'upi'" json:"payment_method"`
	PaymentStatus string      `gorm:"type:varchar(20);not null;default:'completed'" json:"payment_status"`
	CompletedAt   *time.Time  `json:"completed_at,omitempty"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
	OrderItems    []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}
