package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ObtainToken exchanges credentials for an access token and the account role.
func (c *Client) ObtainToken(ctx context.Context, creds Credentials) (*TokenPair, error) {
	var pair TokenPair
	if err := c.doJSON(ctx, http.MethodPost, "/api/token/", creds, false, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// GoogleLogin exchanges a verified Google profile for an access token and role.
func (c *Client) GoogleLogin(ctx context.Context, profile GoogleProfile) (*TokenPair, error) {
	var pair TokenPair
	if err := c.doJSON(ctx, http.MethodPost, "/api/google-login/", profile, false, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Me returns the profile of the signed-in user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.getJSON(ctx, "/api/me/", true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, reg Registration) (*Message, error) {
	var msg Message
	if err := c.doJSON(ctx, http.MethodPost, "/api/register/", reg, false, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ForgotPassword asks the backend to mail a reset link to email.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*Message, error) {
	var msg Message
	body := map[string]string{"email": email}
	if err := c.doJSON(ctx, http.MethodPost, "/api/mot-de-passe-oublie/", body, false, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ResetPassword sets a new password using the uid and token of a reset link.
func (c *Client) ResetPassword(ctx context.Context, uid, token string, reset PasswordReset) (*Message, error) {
	var msg Message
	path := fmt.Sprintf("/api/reinitialiser-mot-de-passe/%s/%s/", url.PathEscape(uid), url.PathEscape(token))
	if err := c.doJSON(ctx, http.MethodPost, path, reset, false, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
