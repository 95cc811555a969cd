package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/JaimeStill/printmg/internal/account"
	"github.com/JaimeStill/printmg/internal/session"
)

func (e *env) loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in with email and password",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, EnvVars: []string{"PRINTMG_PASSWORD"}},
			&cli.BoolFlag{Name: "remember", Aliases: []string{"r"}, Usage: "keep the session after a reboot"},
		},
		Action: e.gated("/login", func(c *cli.Context) error {
			password, err := e.secret(c, "password", "Password")
			if err != nil {
				return err
			}

			role, err := e.account.Login(c.Context, c.String("email"), password, c.Bool("remember"))
			if err != nil {
				return err
			}
			e.signedIn(c.String("email"), role, c.Bool("remember"))
			return nil
		}),
	}
}

func (e *env) googleLoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login-google",
		Usage: "sign in with a Google ID token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id-token", Required: true, EnvVars: []string{"PRINTMG_GOOGLE_ID_TOKEN"}},
			&cli.BoolFlag{Name: "remember", Aliases: []string{"r"}},
		},
		Action: e.gated("/login", func(c *cli.Context) error {
			role, err := e.account.GoogleLogin(c.Context, c.String("id-token"), c.Bool("remember"))
			if err != nil {
				if errors.Is(err, account.ErrNoVerifier) {
					return fmt.Errorf("google sign-in requires google.client_id")
				}
				return err
			}

			user, err := e.account.Me(c.Context)
			if err != nil {
				return err
			}
			e.signedIn(user.Email, role, c.Bool("remember"))
			return nil
		}),
	}
}

func (e *env) signedIn(email string, role session.Role, remember bool) {
	e.println("auth.logged_in", email, role)
	if remember {
		e.println("auth.remembered")
	}
}

func (e *env) logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "close the session",
		Action: e.gated("/", func(c *cli.Context) error {
			if err := e.account.Logout(c.Context); err != nil {
				return err
			}
			e.println("auth.logged_out")
			return nil
		}),
	}
}

func (e *env) whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the signed-in account",
		Action: e.gated("/", func(c *cli.Context) error {
			sess, ok := e.sessions.Current(c.Context)
			if !ok {
				e.println("auth.anonymous")
				return nil
			}

			user, err := e.account.Me(c.Context)
			if err != nil {
				return err
			}
			if e.json {
				return e.emit(user)
			}

			until := "-"
			if claims, err := session.ParseClaims(sess.Token); err == nil && claims.ExpiresAt != nil {
				until = claims.ExpiresAt.Local().Format(dateLayout)
				if claims.Expired(time.Now()) {
					until += " (!)"
				}
			}
			e.println("auth.whoami", user.Email, sess.Role, until)
			if sess.Persisted {
				e.println("auth.remembered")
			}
			return nil
		}),
	}
}

func (e *env) registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create a customer account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "last-name", Required: true},
			&cli.StringFlag{Name: "first-name", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "phone", Required: true},
			&cli.StringFlag{Name: "postal-code"},
			&cli.StringFlag{Name: "city"},
			&cli.StringFlag{Name: "country"},
			&cli.StringFlag{Name: "password", EnvVars: []string{"PRINTMG_PASSWORD"}},
			&cli.StringFlag{Name: "confirm"},
		},
		Action: e.gated("/register", func(c *cli.Context) error {
			password, err := e.secret(c, "password", "Password")
			if err != nil {
				return err
			}
			confirm := c.String("confirm")
			if !c.IsSet("confirm") {
				confirm = password
			}

			_, err = e.account.Register(c.Context, account.RegisterForm{
				LastName:        c.String("last-name"),
				FirstName:       c.String("first-name"),
				Email:           c.String("email"),
				Phone:           c.String("phone"),
				PostalCode:      c.String("postal-code"),
				City:            c.String("city"),
				Country:         c.String("country"),
				Password:        password,
				ConfirmPassword: confirm,
			})
			if err != nil {
				return err
			}
			e.println("auth.registered")
			return nil
		}),
	}
}

func (e *env) passwordCommand() *cli.Command {
	return &cli.Command{
		Name:  "password",
		Usage: "recover a forgotten password",
		Subcommands: []*cli.Command{
			{
				Name:  "forgot",
				Usage: "send a reset link by email",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
				},
				Action: e.gated("/mot-de-passe-oublie", func(c *cli.Context) error {
					if _, err := e.account.ForgotPassword(c.Context, c.String("email")); err != nil {
						return err
					}
					e.println("auth.reset_sent", c.String("email"))
					return nil
				}),
			},
			{
				Name:  "reset",
				Usage: "choose a new password from a reset link",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "uid", Required: true},
					&cli.StringFlag{Name: "token", Required: true},
					&cli.StringFlag{Name: "password", EnvVars: []string{"PRINTMG_PASSWORD"}},
					&cli.StringFlag{Name: "confirm"},
				},
				Action: e.gated("/reinitialiser-mot-de-passe", func(c *cli.Context) error {
					password, err := e.secret(c, "password", "New password")
					if err != nil {
						return err
					}
					confirm := c.String("confirm")
					if !c.IsSet("confirm") {
						confirm = password
					}

					if _, err := e.account.ResetPassword(c.Context, c.String("uid"), c.String("token"), password, confirm); err != nil {
						return err
					}
					e.println("auth.password_changed")
					return nil
				}),
			},
		},
	}
}

// secret returns the flag value, prompting on the input stream when unset.
func (e *env) secret(c *cli.Context, flag, prompt string) (string, error) {
	if v := c.String(flag); v != "" {
		return v, nil
	}

	fmt.Fprintf(e.out, "%s: ", prompt)
	line, err := e.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read %s: %w", flag, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
