package models

import "time"

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// Profile holds the role and role-specific attributes of a user.
// It is created in the same transaction as the User row during registration;
// the role never changes afterwards.
type Profile struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	Role   string `gorm:"type:varchar(20);not null;default:'student'" json:"role"`

	// Student fields
	StudentNumber *string `gorm:"type:varchar(50)" json:"student_number,omitempty"`
	Department    *string `gorm:"type:varchar(100)" json:"department,omitempty"`

	// Admin (cafeteria staff) fields
	StaffID       *string `gorm:"type:varchar(50)" json:"staff_id,omitempty"`
	CafeteriaName *string `gorm:"type:varchar(100)" json:"cafeteria_name,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
