package constants

const (
	// ContextKeyClaims is the gin context key holding the decoded *auth.Claims.
	ContextKeyClaims = "claims"

	TokenType     = "bearer"
	TokenIssuer   = "company-task-api"
	TokenAudience = "company-task-api"

	MinPasswordLength = 8

	// MaxInProgressTasks caps how many IN_PROGRESS tasks one user may own.
	MaxInProgressTasks = 2
)
