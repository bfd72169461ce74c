package constants

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "task_session"

// Context keys shared between middleware and handlers.
const (
	ContextKeyUserID = "user_id"
	ContextKeyActor  = "actor"
)

// Pagination bounds.
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// Authentication rules.
const (
	MinPasswordLength = 8
)

// AI task drafting limits.
const (
	MaxAIGeneratedTasks = 20
)
