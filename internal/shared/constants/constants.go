package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyPrincipalID   = "principal_id"
	ContextKeyPrincipalRole = "principal_role"
	ContextKeyRequestID     = "request_id"

	// Database table names
	TablePrincipals    = "principals"
	TableDelegations   = "delegations"
	TableGroupMembers  = "group_members"
	TableProducts      = "products"
	TablePurchases     = "purchases"
	TablePlans         = "plans"
	TableSubscriptions = "subscriptions"
	TableClaims        = "claims"
)
