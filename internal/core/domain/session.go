package domain

import (
	"encoding/json"
	"fmt"
)

// LookupStatus is the outcome of reading the stored user record.
type LookupStatus int

const (
	LookupAbsent LookupStatus = iota
	LookupFound
	LookupMalformed
)

func (s LookupStatus) String() string {
	switch s {
	case LookupFound:
		return "found"
	case LookupMalformed:
		return "malformed"
	default:
		return "absent"
	}
}

// UserLookup is the typed result of decoding the stored user record. User is
// non-nil only when Status is LookupFound; Err carries the decode failure of
// a malformed record.
type UserLookup struct {
	Status LookupStatus
	User   *User
	Err    error
}

// LoginResult is the login endpoint payload: the token next to the flat user
// attributes.
type LoginResult struct {
	Token string
	User  User
}

func (r *LoginResult) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = LoginResult{}
	if tok, ok := raw["token"]; ok {
		if err := json.Unmarshal(tok, &r.Token); err != nil {
			return fmt.Errorf("login result: token: %w", err)
		}
		delete(raw, "token")
	}
	rest, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(rest, &r.User)
}

// SessionUser is the descriptor the console persists after a login. Only the
// identity attributes are kept, as the login page always did.
func (r *LoginResult) SessionUser() User {
	return User{ID: r.User.ID, Name: r.User.Name, Email: r.User.Email, Role: r.User.Role}
}
