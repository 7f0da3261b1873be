// Package guard decides whether a navigation may proceed given the session.
//
// Evaluation is synchronous and reads only the session; it never touches the network.
package guard

// Access classifies a route.
type Access int

const (
	// PublicOnly routes are for visitors; a logged-in user is sent to the dashboard.
	PublicOnly Access = iota
	// Protected routes require a session token.
	Protected
)

// String returns the access name used in logs.
func (a Access) String() string {
	switch a {
	case PublicOnly:
		return "public-only"
	case Protected:
		return "protected"
	default:
		return "unknown"
	}
}

// Route is one entry of the route table.
type Route struct {
	Name    string
	Pattern string // gorilla/mux path template
	Access  Access
}

// Well-known destinations.
const (
	PathHome      = "/"
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
)

// Routes is the application route table.
var Routes = []Route{
	{Name: "home", Pattern: "/", Access: PublicOnly},
	{Name: "login", Pattern: "/login", Access: PublicOnly},
	{Name: "register", Pattern: "/register", Access: PublicOnly},

	{Name: "dashboard", Pattern: "/dashboard", Access: Protected},
	{Name: "reminders", Pattern: "/lembretes", Access: Protected},
	{Name: "reminder-new", Pattern: "/lembretes/novo", Access: Protected},
	{Name: "reminder-edit", Pattern: "/lembretes/{id:[0-9]+}/editar", Access: Protected},
	{Name: "diary", Pattern: "/diario", Access: Protected},
	{Name: "diary-new", Pattern: "/diario/novo", Access: Protected},
	{Name: "assistant", Pattern: "/assistente", Access: Protected},
	{Name: "contacts", Pattern: "/contatos", Access: Protected},
	{Name: "contact-new", Pattern: "/contatos/novo", Access: Protected},
}
