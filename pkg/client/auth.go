package client

import "context"

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse represents a login or registration response.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// Login authenticates with email and password. On success the returned
// token is set on the client for subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	resp, err := one[LoginResponse](ctx, c, "POST", "/api/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	if resp.Token != "" {
		c.SetToken(resp.Token)
	}
	return resp, nil
}

// Register creates a new member account and logs it in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	resp, err := one[LoginResponse](ctx, c, "POST", "/api/auth/register", req)
	if err != nil {
		return nil, err
	}
	if resp.Token != "" {
		c.SetToken(resp.Token)
	}
	return resp, nil
}

// GetCurrentUser retrieves the currently authenticated user.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	return one[User](ctx, c, "GET", "/api/auth/me", nil)
}
