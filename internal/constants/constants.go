package constants

const (
	// SessionCookieName is the cookie under which the session is stored.
	SessionCookieName = "taskdeck_session"

	// ContextKeyUserID is the session and gin context key holding the
	// authenticated user's ID.
	ContextKeyUserID = "user_id"

	// DueDateLayout is the accepted calendar date format for task due dates.
	DueDateLayout = "2006-01-02"

	// DueDateWarning is surfaced when a supplied due date cannot be parsed.
	// The task operation still succeeds with an empty due date.
	DueDateWarning = "Invalid date format. Use YYYY-MM-DD."
)
