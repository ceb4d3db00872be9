package registration

// Route names a screen by its path.
type Route string

// Application routes.
const (
	RouteHome           Route = "/"
	RouteVerifyEmail    Route = "/verify-email"
	RouteCreateCompany  Route = "/create-company"
	RouteCreateUser     Route = "/create-user"
	RouteForgotPassword Route = "/forgot-password"
)
