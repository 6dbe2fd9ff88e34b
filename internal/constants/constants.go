package constants

const (
	// SessionCookieName is the cookie holding the login session.
	SessionCookieName = "garden_session"

	// ContextKeyUserID is the gin context / session key for the authenticated user.
	ContextKeyUserID = "user_id"

	// MinPasswordLength is the minimum accepted password length on signup.
	MinPasswordLength = 8

	// SessionMaxAge is the session lifetime in seconds (7 days).
	SessionMaxAge = 86400 * 7
)
