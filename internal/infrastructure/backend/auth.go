// Package backend holds the thin facades over the OPD REST API. Each method
// is one independent request through an httpclient.Client; payloads pass
// through as the backend sends them.
package backend

import (
	"context"

	"github.com/medisys/opd-console/internal/core/domain"
	"github.com/medisys/opd-console/internal/infrastructure/httpclient"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthAPI talks to the login endpoints. It is meant to sit on a client
// without the session-expiry stage so a rejected login stays a plain
// *httpclient.ServerError.
type AuthAPI struct {
	client *httpclient.Client
}

func NewAuthAPI(client *httpclient.Client) *AuthAPI {
	return &AuthAPI{client: client}
}

// Login authenticates an administrator.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	return a.login(ctx, "login", email, password)
}

// DoctorLogin authenticates a doctor.
func (a *AuthAPI) DoctorLogin(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	return a.login(ctx, "doctorlogin", email, password)
}

func (a *AuthAPI) login(ctx context.Context, endpoint, email, password string) (*domain.LoginResult, error) {
	var res domain.LoginResult
	if err := a.client.Post(ctx, credentials{Email: email, Password: password}, &res, "auth", endpoint); err != nil {
		return nil, err
	}
	return &res, nil
}
