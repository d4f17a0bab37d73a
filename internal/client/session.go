package client

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/terraincognita07/medtrack/internal/tracker"
)

type sessionUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	OK    bool        `json:"ok"`
	Token string      `json:"token"`
	User  sessionUser `json:"user"`
}

var _ tracker.Session = (*Client)(nil)

// Token returns the bearer token of the current session, or "".
func (client *Client) Token() string {
	client.mu.RLock()
	defer client.mu.RUnlock()
	return client.token
}

func (client *Client) setSession(token string, user *sessionUser) {
	client.mu.Lock()
	defer client.mu.Unlock()
	client.token = token
	client.user = user
}

func (client *Client) Register(ctx context.Context, email string, password string) (*tracker.User, error) {
	return client.startSession(ctx, "/api/auth/register", email, password)
}

func (client *Client) Login(ctx context.Context, email string, password string) (*tracker.User, error) {
	return client.startSession(ctx, "/api/auth/login", email, password)
}

func (client *Client) startSession(ctx context.Context, path string, email string, password string) (*tracker.User, error) {
	response := sessionResponse{}
	if err := client.do(ctx, fiber.MethodPost, path, credentialsRequest{Email: email, Password: password}, &response); err != nil {
		return nil, err
	}
	user := response.User
	client.setSession(response.Token, &user)
	return &tracker.User{ID: user.ID, Email: user.Email}, nil
}

// Restore resumes a session from a saved token. An expired or revoked token
// clears the session and returns the server error.
func (client *Client) Restore(ctx context.Context, token string) (*tracker.User, error) {
	client.setSession(token, nil)

	user := sessionUser{}
	if err := client.do(ctx, fiber.MethodGet, "/api/auth/me", nil, &user); err != nil {
		if IsStatus(err, fiber.StatusUnauthorized) {
			client.setSession("", nil)
		}
		return nil, err
	}
	client.setSession(token, &user)
	return &tracker.User{ID: user.ID, Email: user.Email}, nil
}

func (client *Client) CurrentUser(ctx context.Context) (*tracker.User, error) {
	client.mu.RLock()
	token := client.token
	cached := client.user
	client.mu.RUnlock()

	if token == "" {
		return nil, nil
	}
	if cached != nil {
		return &tracker.User{ID: cached.ID, Email: cached.Email}, nil
	}
	return client.Restore(ctx, token)
}

// SignOut ends the session locally even when the server cannot be reached.
func (client *Client) SignOut(ctx context.Context) error {
	if client.Token() == "" {
		return nil
	}
	err := client.do(ctx, fiber.MethodPost, "/api/auth/logout", nil, nil)
	client.setSession("", nil)
	if err != nil {
		client.logger.Warn("sign out request failed", "error", err)
	}
	return err
}
