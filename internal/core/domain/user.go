package domain

import (
	"encoding/json"
	"fmt"
)

const (
	RoleAdmin  = "admin"
	RoleDoctor = "doctor"
)

// User is the descriptor persisted next to the bearer token. Attributes the
// console does not know about are kept in Extra and survive a round-trip.
type User struct {
	ID    string
	Name  string
	Email string
	Role  string
	Extra map[string]any
}

var userKeys = map[string]struct{}{"_id": {}, "name": {}, "email": {}, "role": {}}

func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.Extra)+4)
	for k, v := range u.Extra {
		out[k] = v
	}
	if u.ID != "" {
		out["_id"] = u.ID
	}
	if u.Name != "" {
		out["name"] = u.Name
	}
	if u.Email != "" {
		out["email"] = u.Email
	}
	if u.Role != "" {
		out["role"] = u.Role
	}
	return json.Marshal(out)
}

func (u *User) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("user: expected object, got %s", data)
	}

	var err error
	*u = User{}
	if u.ID, err = stringField(raw, "_id"); err != nil {
		return err
	}
	if u.Name, err = stringField(raw, "name"); err != nil {
		return err
	}
	if u.Email, err = stringField(raw, "email"); err != nil {
		return err
	}
	if u.Role, err = stringField(raw, "role"); err != nil {
		return err
	}

	for k, v := range raw {
		if _, known := userKeys[k]; known {
			continue
		}
		if u.Extra == nil {
			u.Extra = make(map[string]any)
		}
		u.Extra[k] = v
	}
	return nil
}

func stringField(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("user: field %q is %T, want string", key, v)
	}
	return s, nil
}

// HasRole reports whether the user's role is one of roles.
func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

const (
	adminDashboard  = "/admin/dashboard"
	doctorDashboard = "/doctor/dashboard"
)

// LandingPath is where "/" sends the stored user: doctors to their
// dashboard, everyone else (and no user) to the admin dashboard.
func (u *User) LandingPath() string {
	if u != nil && u.Role == RoleDoctor {
		return doctorDashboard
	}
	return adminDashboard
}

// LoginLandingPath is where a fresh login goes. Only admins land on the
// admin dashboard; any other role the backend returns goes to the doctor one.
func (u *User) LoginLandingPath() string {
	if u != nil && u.Role == RoleAdmin {
		return adminDashboard
	}
	return doctorDashboard
}
