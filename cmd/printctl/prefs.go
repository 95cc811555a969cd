package main

import (
	"github.com/urfave/cli/v2"

	"github.com/JaimeStill/printmg/internal/i18n"
	"github.com/JaimeStill/printmg/internal/session"
)

func (e *env) prefsCommand() *cli.Command {
	return &cli.Command{
		Name:  "prefs",
		Usage: "interface preferences, kept across sessions",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print the stored preferences",
				Action: e.gated("/", func(c *cli.Context) error {
					prefs, err := e.prefs.Load(c.Context)
					if err != nil {
						return err
					}
					if e.json {
						return e.emit(prefs)
					}
					e.printPrefs(prefs)
					return nil
				}),
			},
			{
				Name:      "lang",
				Usage:     "set the interface language",
				ArgsUsage: "<fr|en|mlg>",
				Action: e.gated("/", func(c *cli.Context) error {
					lang := c.Args().First()
					if err := e.prefs.SetLanguage(c.Context, lang); err != nil {
						return err
					}
					e.tr = i18n.New(lang)
					e.println("prefs.language", lang)
					return nil
				}),
			},
			{
				Name:      "theme",
				Usage:     "set the color scheme",
				ArgsUsage: "<light|dark>",
				Action: e.gated("/", func(c *cli.Context) error {
					theme, err := session.ParseTheme(c.Args().First())
					if err != nil {
						return err
					}
					if err := e.prefs.SetTheme(c.Context, theme); err != nil {
						return err
					}
					e.println("prefs.theme", e.tr.T("prefs.themes."+string(theme)))
					return nil
				}),
			},
		},
	}
}

func (e *env) printPrefs(p session.Preferences) {
	e.println("prefs.language", p.Language)
	theme := "-"
	if p.Theme != "" {
		theme = e.tr.T("prefs.themes." + string(p.Theme))
	}
	e.println("prefs.theme", theme)
}
