package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/jrsteele09/billing-console/billing"
	"github.com/jrsteele09/billing-console/gateway"
)

const (
	RouteLogin  = billing.RouteAuthLogin
	RouteLogout = billing.RouteAuthLogout

	// LoginFailedMessage is reported when the backend rejects a login without saying why.
	LoginFailedMessage = "Login failed"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh-token"`
}

// GatewayAuth implements AuthAPI on top of the gateway client.
type GatewayAuth struct {
	gw *gateway.Client
}

var _ AuthAPI = (*GatewayAuth)(nil)

func NewGatewayAuth(gw *gateway.Client) *GatewayAuth {
	return &GatewayAuth{gw: gw}
}

// Login sends the credentials only; the backend resolves the tenant from the request host. The
// call is anonymous, so login is exempt from the clear-and-redirect every other 401 triggers: a
// rejected login never clears a session that is still stored and never navigates to /login.
func (a *GatewayAuth) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := a.gw.Do(ctx, RouteLogin, &gateway.RequestOptions{
		Method:    http.MethodPost,
		Body:      loginRequest{Email: email, Password: password},
		Anonymous: true,
	}, &resp)
	if err != nil {
		return nil, loginError(err)
	}
	return &resp, nil
}

func (a *GatewayAuth) Logout(ctx context.Context, refreshToken string) error {
	return a.gw.Post(ctx, RouteLogout, logoutRequest{RefreshToken: refreshToken}, nil)
}

// loginError keeps the backend's message when there is one and otherwise replaces the
// synthesized HTTP message with LoginFailedMessage. Transport failures pass through.
func loginError(err error) error {
	var apiErr *gateway.APIError
	if !errors.As(err, &apiErr) || !apiErr.HasStatus() {
		return err
	}
	if _, ok := apiErr.PayloadMessage(); ok {
		return apiErr
	}
	return loginFailed(apiErr.Status, apiErr.Payload)
}

func loginFailed(status *int, payload any) error {
	return &gateway.APIError{Message: LoginFailedMessage, Status: status, Payload: payload}
}
