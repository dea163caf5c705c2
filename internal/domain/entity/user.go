package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff roles
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
	RoleKitchen = "kitchen"
)

// Permissions checked by the HTTP layer
const (
	PermissionManageOrders  = "manage-orders"
	PermissionPrintReceipts = "print-receipts"
	PermissionViewDashboard = "view-dashboard"
	PermissionViewCatalog   = "view-catalog"
)

var rolePermissions = map[string][]string{
	RoleAdmin: {
		PermissionManageOrders,
		PermissionPrintReceipts,
		PermissionViewDashboard,
		PermissionViewCatalog,
	},
	RoleCashier: {
		PermissionManageOrders,
		PermissionPrintReceipts,
		PermissionViewCatalog,
	},
	RoleKitchen: {
		PermissionPrintReceipts,
	},
}

// User is a back-office staff account
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Username  string         `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email     string         `gorm:"size:255" json:"email,omitempty"`
	Password  string         `gorm:"size:255" json:"-"`
	Role      string         `gorm:"size:30;not null;default:'cashier'" json:"role"`
	IsStaff   bool           `gorm:"default:true" json:"is_staff"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// GetPermissions returns the permissions granted by the user's role.
func (u *User) GetPermissions() []string {
	perms := rolePermissions[u.Role]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}
