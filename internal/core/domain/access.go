package domain

// AccessState is the outcome of guarding one protected render.
type AccessState int

const (
	Unauthenticated AccessState = iota
	AuthenticatedUnauthorized
	Authorized
)

func (s AccessState) String() string {
	switch s {
	case Authorized:
		return "authorized"
	case AuthenticatedUnauthorized:
		return "authenticated_unauthorized"
	default:
		return "unauthenticated"
	}
}

// Decision is what the guard concluded for one navigation. Redirect is set
// whenever State is not Authorized.
type Decision struct {
	State    AccessState
	User     *User
	Redirect string
}

// Allowed reports whether the protected content may render.
func (d Decision) Allowed() bool {
	return d.State == Authorized
}
