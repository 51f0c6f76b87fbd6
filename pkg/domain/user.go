package domain

// User is the identity supplied by the Telegram host.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	PhotoURL  string `json:"photo_url"`
}

// Fallback identity values used when the host does not provide them.
const (
	DefaultUserName     = "Alex Designer"
	FallbackUserName    = "User"
	PlaceholderPhotoURL = "https://picsum.photos/seed/avatar3/100/100"
)

// Role decides which side of the dashboard a user sees.
type Role string

const (
	RoleNone     Role = ""
	RoleDesigner Role = "designer"
	RoleClient   Role = "client"
)

// Valid reports whether r is a known role (unset included).
func (r Role) Valid() bool {
	switch r {
	case RoleNone, RoleDesigner, RoleClient:
		return true
	}
	return false
}
