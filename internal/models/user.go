package models

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleStaff    UserRole = "staff"
	RoleCustomer UserRole = "customer"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	FirstName    string `gorm:"size:100"`
	LastName     string `gorm:"size:100"`
	Username     string `gorm:"size:100;uniqueIndex;not null"`
	Email        string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	IsStaff      bool   `gorm:"not null;default:false"`
	IsSuperuser  bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role: rol her zaman tek yerden, flag'lerden türetilir (admin > staff > customer)
func (u *User) Role() UserRole {
	if u.IsSuperuser {
		return RoleAdmin
	}
	if u.IsStaff {
		return RoleStaff
	}
	return RoleCustomer
}

// RoleFlags: register sırasında rol string'inden flag'leri üret
func RoleFlags(role UserRole) (isStaff bool, isSuperuser bool) {
	switch role {
	case RoleAdmin:
		return true, true
	case RoleStaff:
		return true, false
	default:
		return false, false
	}
}
