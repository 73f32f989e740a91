package models

import "time"

type User struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	Email     string   `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string   `gorm:"type:varchar(255);not null" json:"-"`
	FullName  string   `gorm:"type:varchar(255);not null" json:"full_name"`
	Profile   *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
