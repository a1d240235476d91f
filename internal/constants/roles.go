package constants

import (
	"database/sql/driver"
	"fmt"
)

// RoleName mirrors the role.name column.
type RoleName string

const (
	RoleAdmin RoleName = "admin"
	RoleHost  RoleName = "host"
	RoleUser  RoleName = "user"
)

// Fixed role identifiers, seeded by migration and referenced by user.role_id.
const (
	RoleIDAdmin = "0ca61bc2-2ff8-4d9a-8b2b-1b8fd2f2a0a1"
	RoleIDHost  = "2b1e4b9c-6a3f-4a56-9a7e-5c0e7b6fbd02"
	RoleIDUser  = "8f3d2a5e-1c4b-4f7e-b6a9-3e2d1c0b9a03"
)

// String implements fmt.Stringer.
func (r RoleName) String() string { return string(r) }

// RoleNameByID resolves a role id to its name.
func RoleNameByID(id string) (RoleName, bool) {
	switch id {
	case RoleIDAdmin:
		return RoleAdmin, true
	case RoleIDHost:
		return RoleHost, true
	case RoleIDUser:
		return RoleUser, true
	}
	return "", false
}

// CanHost reports whether a role may own live rooms.
func CanHost(roleID string) bool {
	return roleID == RoleIDHost || roleID == RoleIDAdmin
}

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *RoleName) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = RoleName(v)
	case []byte:
		*r = RoleName(v)
	default:
		return fmt.Errorf("RoleName: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r RoleName) Value() (driver.Value, error) { return string(r), nil }
