// Command printctl drives the print service from a terminal: one command per
// screen of the client, each gated by the route guard.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "printctl:", err)
		os.Exit(1)
	}
}

func newApp(in io.Reader, out, errOut io.Writer) *cli.App {
	e := newEnv(in, out, errOut)

	return &cli.App{
		Name:      "printctl",
		Usage:     "order prints and follow them from the terminal",
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "configuration file",
				EnvVars: []string{"PRINTMG_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "interface language (fr, en, mlg)",
			},
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "backend base URL, overriding the configuration",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print results as JSON",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log requests to stderr",
			},
		},
		Before: e.init,
		Commands: []*cli.Command{
			e.loginCommand(),
			e.googleLoginCommand(),
			e.logoutCommand(),
			e.whoamiCommand(),
			e.registerCommand(),
			e.passwordCommand(),
			e.productsCommand(),
			e.orderCommand(),
			e.ordersCommand(),
			e.notificationsCommand(),
			e.dashboardCommand(),
			e.adminCommand(),
			e.prefsCommand(),
		},
	}
}
