package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/internal/phone"
	"github.com/JaimeStill/printmg/internal/session"
)

// Backend is the account surface of the API.
type Backend interface {
	ObtainToken(ctx context.Context, creds backend.Credentials) (*backend.TokenPair, error)
	GoogleLogin(ctx context.Context, profile backend.GoogleProfile) (*backend.TokenPair, error)
	Me(ctx context.Context) (*backend.User, error)
	Register(ctx context.Context, reg backend.Registration) (*backend.Message, error)
	ForgotPassword(ctx context.Context, email string) (*backend.Message, error)
	ResetPassword(ctx context.Context, uid, token string, reset backend.PasswordReset) (*backend.Message, error)
}

// Sessions is written once per login and once per logout.
type Sessions interface {
	Login(ctx context.Context, token string, role session.Role, persist bool) error
	Logout(ctx context.Context) error
}

// RegisterForm is the registration form.
type RegisterForm struct {
	LastName        string `validate:"required,max=100"`
	FirstName       string `validate:"required,max=100"`
	Email           string `validate:"required,email"`
	Phone           string `validate:"required"`
	PostalCode      string `validate:"omitempty,max=10"`
	City            string `validate:"omitempty,max=100"`
	Country         string `validate:"omitempty,max=100"`
	Password        string `validate:"required,strong_password"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type reset struct {
	UID             string `validate:"required"`
	Token           string `validate:"required"`
	Password        string `validate:"required,strong_password"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// Account runs the authentication flows.
type Account struct {
	backend  Backend
	sessions Sessions
	verifier Verifier
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates the account flows. verifier may be nil, which disables Google
// sign-in.
func New(b Backend, sessions Sessions, verifier Verifier, logger *slog.Logger) *Account {
	return &Account{
		backend:  b,
		sessions: sessions,
		verifier: verifier,
		validate: newValidator(),
		logger:   logger.With("system", "account"),
	}
}

// Login exchanges credentials for a token and opens the session. With
// remember the session outlives the machine session.
func (a *Account) Login(ctx context.Context, email, password string, remember bool) (session.Role, error) {
	creds := credentials{Email: strings.TrimSpace(email), Password: password}
	if err := a.validate.Struct(creds); err != nil {
		return "", fieldError(err)
	}

	pair, err := a.backend.ObtainToken(ctx, backend.Credentials{Email: creds.Email, Password: creds.Password})
	if err != nil {
		return "", err
	}

	return a.open(ctx, pair, remember, "password")
}

// GoogleLogin verifies a Google ID token, forwards its profile and opens the
// session.
func (a *Account) GoogleLogin(ctx context.Context, idToken string, remember bool) (session.Role, error) {
	if a.verifier == nil {
		return "", ErrNoVerifier
	}

	profile, err := a.verifier.Verify(ctx, idToken)
	if err != nil {
		return "", err
	}

	pair, err := a.backend.GoogleLogin(ctx, *profile)
	if err != nil {
		return "", err
	}

	return a.open(ctx, pair, remember, "google")
}

// Register validates form and creates the account. It does not sign in.
func (a *Account) Register(ctx context.Context, form RegisterForm) (*backend.Message, error) {
	form.Email = strings.TrimSpace(form.Email)
	if err := a.validate.Struct(form); err != nil {
		return nil, fieldError(err)
	}

	num, err := phone.Validate(form.Phone)
	if err != nil {
		return nil, &FieldError{Field: "Phone", Reason: err.Error(), Err: err}
	}

	msg, err := a.backend.Register(ctx, backend.Registration{
		LastName:        strings.TrimSpace(form.LastName),
		FirstName:       strings.TrimSpace(form.FirstName),
		Email:           form.Email,
		Phone:           num,
		PostalCode:      form.PostalCode,
		City:            form.City,
		Country:         form.Country,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info("account registered", "email", form.Email)
	return msg, nil
}

// ForgotPassword asks the backend to mail a reset link.
func (a *Account) ForgotPassword(ctx context.Context, email string) (*backend.Message, error) {
	email = strings.TrimSpace(email)
	if err := a.validate.Var(email, "required,email"); err != nil {
		return nil, &FieldError{Field: "Email", Reason: reasons["email"], Err: err}
	}
	return a.backend.ForgotPassword(ctx, email)
}

// ResetPassword sets a new password using the uid and token of a reset link.
func (a *Account) ResetPassword(ctx context.Context, uid, token, password, confirm string) (*backend.Message, error) {
	r := reset{UID: uid, Token: token, Password: password, ConfirmPassword: confirm}
	if err := a.validate.Struct(r); err != nil {
		return nil, fieldError(err)
	}
	return a.backend.ResetPassword(ctx, uid, token, backend.PasswordReset{
		Password:        password,
		ConfirmPassword: confirm,
	})
}

// Me returns the profile of the signed-in user.
func (a *Account) Me(ctx context.Context) (*backend.User, error) {
	return a.backend.Me(ctx)
}

// Logout closes the session.
func (a *Account) Logout(ctx context.Context) error {
	return a.sessions.Logout(ctx)
}

func (a *Account) open(ctx context.Context, pair *backend.TokenPair, remember bool, method string) (session.Role, error) {
	role, err := session.ParseRole(pair.Role)
	if err != nil {
		return "", err
	}
	if err := a.sessions.Login(ctx, pair.Access, role, remember); err != nil {
		return "", err
	}

	a.logger.Info("signed in", "method", method, "role", role, "remember", remember)
	return role, nil
}
