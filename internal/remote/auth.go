package remote

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sarkaridakiya/dakiya/internal/logger"
)

// Credentials carry what the login form posts.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AuthResult is the coalesced outcome of a login or registration call.
// The server nests tokens and user fields differently between the two,
// so both spots are checked.
type AuthResult struct {
	Access    string
	Refresh   string
	Email     string
	Name      string
	FirstName string
	LastName  string
}

type userPayload struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff"`
}

type authEnvelope struct {
	Message string       `json:"message"`
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    *userPayload `json:"user"`
	Data    struct {
		Access  string       `json:"access"`
		Refresh string       `json:"refresh"`
		User    *userPayload `json:"user"`
	} `json:"data"`
}

func (e *authEnvelope) result() *AuthResult {
	res := &AuthResult{
		Access:  e.Data.Access,
		Refresh: e.Data.Refresh,
	}
	if res.Access == "" {
		res.Access = e.Access
	}
	if res.Refresh == "" {
		res.Refresh = e.Refresh
	}

	user := e.Data.User
	if user == nil {
		user = e.User
	}
	if user != nil {
		res.Email = user.Email
		res.Name = user.Name
		res.FirstName = user.FirstName
		res.LastName = user.LastName
	}
	return res
}

// Login posts credentials and returns the coalesced token/user payload.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	_, body, err := c.do(ctx, http.MethodPost, "/login/", creds)
	if err != nil {
		return nil, err
	}

	var envelope authEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &StatusError{Status: http.StatusOK, Body: "unreadable login response"}
	}
	return envelope.result(), nil
}

// Registration carries what the signup form posts. The server keys
// accounts by username, which mirrors the email address.
type Registration struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Register creates an account. Token fields are optional in the
// response; when absent the caller follows up with Login.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResult, error) {
	_, body, err := c.do(ctx, http.MethodPost, "/register/", reg)
	if err != nil {
		return nil, err
	}

	var envelope authEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &AuthResult{Email: reg.Email}, nil
	}
	res := envelope.result()
	if res.Email == "" {
		res.Email = reg.Email
	}
	return res, nil
}

// Logout tells the server to blacklist the refresh token. Best effort:
// the caller logs failures and clears local state regardless.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	payload := map[string]string{"refresh": refreshToken}
	_, _, err := c.do(ctx, http.MethodPost, "/logout/", payload)
	return err
}

// Profile is the server's view of the authenticated user.
type Profile struct {
	Email     string
	Name      string
	FirstName string
	LastName  string
	IsStaff   bool
}

type profileEnvelope struct {
	Status string       `json:"status"`
	Data   *userPayload `json:"data"`
	userPayload
}

// LoadProfile fetches the authenticated user's profile. Callers treat
// failures as non-fatal; the session keeps its previously known data.
func (c *Client) LoadProfile(ctx context.Context) (*Profile, error) {
	_, body, err := c.do(ctx, http.MethodGet, "/profile/", nil)
	if err != nil {
		return nil, err
	}

	var envelope profileEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &StatusError{Status: http.StatusOK, Body: "unreadable profile response"}
	}

	user := envelope.Data
	if user == nil {
		user = &envelope.userPayload
	}

	profile := &Profile{
		Email:     user.Email,
		Name:      user.Name,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsStaff:   user.IsStaff,
	}
	c.logger.Debug("profile loaded", logger.String("email", profile.Email))
	return profile, nil
}
