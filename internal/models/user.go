package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role represents user roles in the system
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

// User is a portal account. Most users are company staff; Department and
// EmployeeNumber tie the account to the HR directory.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	PasswordHash   string             `bson:"password_hash" json:"-"`
	Role           Role               `bson:"role" json:"role"`
	FirstName      string             `bson:"first_name" json:"first_name"`
	LastName       string             `bson:"last_name" json:"last_name"`
	Department     string             `bson:"department,omitempty" json:"department,omitempty"`
	EmployeeNumber string             `bson:"employee_number,omitempty" json:"employee_number,omitempty"`
	IsActive       bool               `bson:"is_active" json:"is_active"`
	LastLogin      *time.Time         `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest represents a user registration request. Role is optional
// and defaults to viewer; only an admin can hand out anything stronger.
type RegisterRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Department     string `json:"department"`
	EmployeeNumber string `json:"employee_number"`
	Role           Role   `json:"role"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Claims represents JWT claims
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Exp      int64  `json:"exp"`
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleOperator, RoleViewer:
		return true
	default:
		return false
	}
}

// HasPermission checks if a user has permission for a specific action
func (u *User) HasPermission(action string) bool {
	switch u.Role {
	case RoleAdmin:
		return true
	case RoleManager:
		return action != "delete_user" && action != "manage_users"
	case RoleOperator:
		return action == "view_assets" || action == "view_warnings" ||
			action == "view_costs" || action == "create_maintenance" ||
			action == "update_maintenance" || action == "record_mileage"
	case RoleViewer:
		return action == "view_assets" || action == "view_warnings" ||
			action == "view_costs" || action == "view_vendors" ||
			action == "export_reports"
	default:
		return false
	}
}
