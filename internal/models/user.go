package models

import "gorm.io/gorm"

// Role determines what a user may do on the platform. ADMIN and SUPER_ADMIN
// are platform operators: they review listings and may manage any order.
type Role string

const (
	RoleBuyer      Role = "BUYER"
	RoleSeller     Role = "SELLER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// IsOperator reports whether the role carries platform-operator privileges.
func (r Role) IsOperator() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User represents a user of the marketplace.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Role       Role   `json:"role" gorm:"type:varchar(20);default:BUYER" validate:"omitempty,oneof=BUYER SELLER ADMIN SUPER_ADMIN"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
