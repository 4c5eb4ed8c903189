package models

import (
	"testing"
)

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		expected bool
	}{
		{"admin role", RoleAdmin, true},
		{"manager role", RoleManager, true},
		{"operator role", RoleOperator, true},
		{"viewer role", RoleViewer, true},
		{"invalid role", "invalid", false},
		{"empty role", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidRole(tt.role)
			if result != tt.expected {
				t.Errorf("IsValidRole(%s) = %v, want %v", tt.role, result, tt.expected)
			}
		})
	}
}

func TestUser_HasPermission(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	manager := &User{Role: RoleManager}
	operator := &User{Role: RoleOperator}
	viewer := &User{Role: RoleViewer}

	tests := []struct {
		name     string
		user     *User
		action   string
		expected bool
	}{
		// Admin permissions - should have all permissions
		{"admin can delete user", admin, "delete_user", true},
		{"admin can manage users", admin, "manage_users", true},
		{"admin can view assets", admin, "view_assets", true},
		{"admin can create maintenance", admin, "create_maintenance", true},

		// Manager permissions - can do most things except user management
		{"manager cannot delete user", manager, "delete_user", false},
		{"manager cannot manage users", manager, "manage_users", false},
		{"manager can view warnings", manager, "view_warnings", true},
		{"manager can create maintenance", manager, "create_maintenance", true},

		// Operator permissions - limited to operational tasks
		{"operator can view assets", operator, "view_assets", true},
		{"operator can view warnings", operator, "view_warnings", true},
		{"operator can view costs", operator, "view_costs", true},
		{"operator can create maintenance", operator, "create_maintenance", true},
		{"operator can update maintenance", operator, "update_maintenance", true},
		{"operator can record mileage", operator, "record_mileage", true},
		{"operator cannot delete user", operator, "delete_user", false},
		{"operator cannot manage users", operator, "manage_users", false},

		// Viewer permissions - read-only access
		{"viewer can view assets", viewer, "view_assets", true},
		{"viewer can view warnings", viewer, "view_warnings", true},
		{"viewer can view costs", viewer, "view_costs", true},
		{"viewer can view vendors", viewer, "view_vendors", true},
		{"viewer can export reports", viewer, "export_reports", true},
		{"viewer cannot create maintenance", viewer, "create_maintenance", false},
		{"viewer cannot record mileage", viewer, "record_mileage", false},
		{"viewer cannot delete user", viewer, "delete_user", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.user.HasPermission(tt.action)
			if result != tt.expected {
				t.Errorf("User with role %s HasPermission(%s) = %v, want %v",
					tt.user.Role, tt.action, result, tt.expected)
			}
		})
	}
}
