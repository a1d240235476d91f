package constants

// Entity names used in localized "not found" / "already exists" messages.
const (
	EntityLive    = "live"
	EntityUser    = "user"
	EntityRole    = "role"
	EntitySession = "session"
	EntityViewer  = "live session"
	EntityEmail   = "email"
	EntityPhone   = "phone"
)
