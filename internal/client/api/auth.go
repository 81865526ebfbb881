package api

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/recipehub/internal/client/models"
)

type credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type loginResponse struct {
	tokenResponse
	User models.User `json:"user"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (c *Client) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", nil, credentials{Name: name, Email: email, Password: password}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login exchanges credentials for a new session.
func (c *Client) Login(ctx context.Context, email, password string) (*models.Session, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, credentials{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &models.Session{
		UserID:       resp.User.ID,
		Name:         resp.User.Name,
		Email:        resp.User.Email,
		Token:        resp.Token,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    resp.ExpiresAt,
	}, nil
}

// Refresh rotates the refresh token of sess and returns the updated session;
// sess itself is left unchanged.
func (c *Client) Refresh(ctx context.Context, sess *models.Session) (*models.Session, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", nil, refreshRequest{RefreshToken: sess.RefreshToken}, &resp); err != nil {
		return nil, err
	}

	next := *sess
	next.Token = resp.Token
	next.RefreshToken = resp.RefreshToken
	next.ExpiresAt = resp.ExpiresAt
	return &next, nil
}

// Logout revokes the refresh token of sess on the server.
func (c *Client) Logout(ctx context.Context, sess *models.Session) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, refreshRequest{RefreshToken: sess.RefreshToken}, nil)
}

func (c *Client) Me(ctx context.Context, sess *models.Session) (*models.User, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", sess, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
