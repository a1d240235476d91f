package auth

import "streamhouse/api/internal/constants"

// UserClaims describes the authenticated caller of a request.
type UserClaims interface {
	UserID() string
	RoleID() string
	Role() string
	SessionID() string
	HasRole(roleIDs ...string) bool
}

// SessionClaims are built from a verified bearer token and its session row.
type SessionClaims struct {
	UserUUID    string
	RoleUUID    string
	SessionUUID string
	Username    string
}

func (c *SessionClaims) UserID() string    { return c.UserUUID }
func (c *SessionClaims) RoleID() string    { return c.RoleUUID }
func (c *SessionClaims) SessionID() string { return c.SessionUUID }

func (c *SessionClaims) Role() string {
	name, _ := constants.RoleNameByID(c.RoleUUID)
	return name.String()
}

func (c *SessionClaims) HasRole(roleIDs ...string) bool {
	for _, id := range roleIDs {
		if c.RoleUUID == id {
			return true
		}
	}
	return false
}
