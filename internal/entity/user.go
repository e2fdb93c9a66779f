package entity

import "github.com/hungercard/backend/pkg/enum"

type GlobalRole string

var (
	RoleSuperAdmin = enum.New(GlobalRole("super_admin"))
	RoleAdmin      = enum.New(GlobalRole("admin"))
	RoleUser       = enum.New(GlobalRole("user"))
)

var GlobalAdminRoles = []GlobalRole{RoleSuperAdmin, RoleAdmin}

// User exists for operator authentication only; applicants are tracked by
// their Application row.
type User struct {
	Base

	Name string `gorm:"unique"`
	Role GlobalRole
}
