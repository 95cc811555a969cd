package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/docker/go-units"
	"github.com/urfave/cli/v2"

	"github.com/JaimeStill/printmg/internal/orders"
	"github.com/JaimeStill/printmg/pkg/money"
)

func draftFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "draft", Aliases: []string{"d"}, Required: true, Usage: "TOML order description"},
		&cli.IntFlag{Name: "quantity", Aliases: []string{"q"}, Usage: "override the quantity"},
		&cli.StringFlag{Name: "phone", Usage: "override the MVola number"},
	}
}

func (e *env) orderCommand() *cli.Command {
	return &cli.Command{
		Name:  "order",
		Usage: "prepare and place an order",
		Subcommands: []*cli.Command{
			{
				Name:  "estimate",
				Usage: "show the estimated amount of a draft",
				Flags: draftFlags(),
				Action: e.gated("/commande", func(c *cli.Context) error {
					w, err := e.loadWizard(c)
					if err != nil {
						return err
					}
					e.printEstimate(w.Draft())
					return nil
				}),
			},
			{
				Name:  "new",
				Usage: "walk a draft through the wizard and submit it",
				Flags: append(draftFlags(),
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "confirm without asking"},
				),
				Action: e.gated("/commande", e.placeOrder),
			},
		},
	}
}

// loadWizard fills a fresh wizard from the --draft file and overrides.
func (e *env) loadWizard(c *cli.Context) (*orders.Wizard, error) {
	df, err := orders.LoadDraftFile(c.String("draft"))
	if err != nil {
		return nil, err
	}

	w := orders.NewWizard(e.client, e.logger)
	if err := df.Apply(c.Context, w, e.catalog, e.cfg.Upload.MaxUploadSizeBytes()); err != nil {
		return nil, err
	}
	if c.IsSet("quantity") {
		w.SetQuantity(c.Int("quantity"))
	}
	if c.IsSet("phone") {
		w.SetPhone(c.String("phone"))
	}
	return w, nil
}

func (e *env) placeOrder(c *cli.Context) error {
	w, err := e.loadWizard(c)
	if err != nil {
		return err
	}

	for !w.Confirming() {
		step := w.Step()
		if err := w.Next(); err != nil {
			if orders.IsValidation(err) {
				return fmt.Errorf("%s: %w", e.tr.T("wizard.step."+step.String()), err)
			}
			return err
		}
	}

	e.printSummary(w.Draft())
	e.printEstimate(w.Draft())

	if !c.Bool("yes") {
		ok, err := e.confirm(e.tr.T("wizard.confirm_prompt"))
		if err != nil {
			return err
		}
		if !ok {
			w.Cancel()
			e.println("wizard.cancelled")
			return nil
		}
	}

	receipt, err := w.Confirm(c.Context)
	if err != nil {
		return err
	}
	if e.json {
		return e.emit(receipt)
	}
	e.println("orders.confirmed", receipt.OrderID, e.tr.Amount(money.FromDecimal(receipt.Amount)), receipt.PaymentStatus)
	return nil
}

func (e *env) printSummary(d orders.Draft) {
	e.println("wizard.step.file")
	if d.File != nil {
		fmt.Fprintf(e.out, "  %s (%s, %s)\n", d.DisplayName, strings.ToUpper(d.File.Extension), units.HumanSize(float64(d.File.Size)))
	}
	fmt.Fprintf(e.out, "  %d dpi, %s\n", d.Resolution, d.ColorProfile)

	e.println("wizard.step.configuration")
	switch {
	case d.Product != nil:
		fmt.Fprintf(e.out, "  %s\n", d.Product.Name)
	case d.Book:
		fmt.Fprintf(e.out, "  %d pages\n", d.PageCount)
	}
	format := string(d.SmallFormat)
	if d.FormatClass == orders.FormatLarge {
		format = strconv.FormatFloat(d.Width, 'f', -1, 64) + " x " + strconv.FormatFloat(d.Height, 'f', -1, 64) + " cm"
	}
	fmt.Fprintf(e.out, "  %s, %s, %s, x%d\n", format, d.Paper, d.Finish, d.Quantity)
	if d.Book {
		fmt.Fprintf(e.out, "  %s, %s, %s\n", d.Duplex, d.Binding, d.Cover)
	}

	e.println("wizard.step.contact")
	fmt.Fprintf(e.out, "  MVola %s\n", d.Phone)
	if d.Options != "" {
		fmt.Fprintf(e.out, "  %s\n", d.Options)
	}
}

func (e *env) printEstimate(d orders.Draft) {
	amount, ok := orders.Estimate(d)
	if !ok {
		e.println("wizard.no_estimate")
		return
	}
	e.println("wizard.estimate", e.tr.Amount(amount))
	e.println("wizard.advisory")
}
