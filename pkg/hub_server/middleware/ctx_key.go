package middleware

// keys of values stored in context
type MiddleWareContextKey string

const (
	COMPANY_ID     = MiddleWareContextKey("company_id")     // The context value is a string representing the company (tenant) ID.
	API_TOKEN      = MiddleWareContextKey("api_token")      // The context value is a auth.APIToken.
	DASHBOARD_USER = MiddleWareContextKey("dashboard_user") // The context value is a auth.DashboardClaims.
)
