package main

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/internal/catalog"
	"github.com/JaimeStill/printmg/pkg/money"
	"github.com/JaimeStill/printmg/pkg/pagination"
	"github.com/JaimeStill/printmg/pkg/query"
)

func pageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "case and accent insensitive filter"},
		&cli.StringFlag{Name: "sort", Usage: `comma-separated fields, "-" for descending`},
		&cli.IntFlag{Name: "page", Value: 1},
		&cli.IntFlag{Name: "page-size"},
	}
}

func pageRequest(c *cli.Context) pagination.PageRequest {
	req := pagination.PageRequest{
		Page:     c.Int("page"),
		PageSize: c.Int("page-size"),
		Sort:     query.ParseSortFields(c.String("sort")),
	}
	if s := c.String("search"); s != "" {
		req.Search = &s
	}
	return req
}

// argID parses the positional identifier of a command.
func argID(c *cli.Context) (int, error) {
	if c.Args().Len() < 1 {
		return 0, fmt.Errorf("%s: identifier required", c.Command.Name)
	}
	id, err := strconv.Atoi(c.Args().First())
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%s: invalid identifier %q", c.Command.Name, c.Args().First())
	}
	return id, nil
}

func productFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Required: required},
		&cli.StringFlag{Name: "category", Required: required},
		&cli.StringFlag{Name: "price", Required: required, Usage: "unit price in ariary"},
		&cli.StringFlag{Name: "description"},
		&cli.StringFlag{Name: "format", Usage: "default format code (A5, A4, A3, custom, large)"},
		&cli.BoolFlag{Name: "large", Usage: "large-format product"},
	}
}

func (e *env) productsCommand() *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "browse and manage the catalog",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list products",
				Flags: append(pageFlags(),
					&cli.StringFlag{Name: "category", Aliases: []string{"k"}},
					&cli.BoolFlag{Name: "categories", Usage: "list the categories instead"},
				),
				Action: e.gated("/produits", e.listProducts),
			},
			{
				Name:   "create",
				Usage:  "add a product",
				Flags:  productFlags(true),
				Action: e.gated("/admin/produits", e.createProduct),
			},
			{
				Name:      "update",
				Usage:     "change a product",
				ArgsUsage: "<id>",
				Flags:     productFlags(false),
				Action:    e.gated("/admin/produits", e.updateProduct),
			},
			{
				Name:      "delete",
				Usage:     "remove a product",
				ArgsUsage: "<id>",
				Action: e.gated("/admin/produits", func(c *cli.Context) error {
					id, err := argID(c)
					if err != nil {
						return err
					}
					if err := e.catalog.Delete(c.Context, id); err != nil {
						return err
					}
					e.println("products.deleted", id)
					return nil
				}),
			},
		},
	}
}

func (e *env) listProducts(c *cli.Context) error {
	if c.Bool("categories") {
		cats, err := e.catalog.Categories(c.Context)
		if err != nil {
			return err
		}
		if e.json {
			return e.emit(cats)
		}
		for _, cat := range cats {
			fmt.Fprintln(e.out, cat)
		}
		return nil
	}

	res, err := e.catalog.List(c.Context, catalog.Filter{Category: c.String("category")}, pageRequest(c))
	if err != nil {
		return err
	}
	if e.json {
		return e.emit(res)
	}
	if res.Total == 0 {
		e.println("products.empty")
		return nil
	}

	t := e.table("products.header.id", "products.header.name", "products.header.category", "products.header.price", "products.header.format")
	for _, p := range res.Data {
		format := p.DefaultFormat
		if p.LargeFormat {
			format = e.tr.T("products.large_format")
		}
		t.row(strconv.Itoa(p.ID), p.Name, p.Category, e.tr.Amount(money.FromDecimal(p.Price)), format)
	}
	if err := t.flush(); err != nil {
		return err
	}
	footer(e, res)
	return nil
}

func (e *env) createProduct(c *cli.Context) error {
	var p backend.Product
	if err := applyProductFlags(c, &p); err != nil {
		return err
	}

	created, err := e.catalog.Create(c.Context, p)
	if err != nil {
		return err
	}
	if e.json {
		return e.emit(created)
	}
	e.println("products.created", created.ID)
	return nil
}

func (e *env) updateProduct(c *cli.Context) error {
	id, err := argID(c)
	if err != nil {
		return err
	}

	p, err := e.catalog.Find(c.Context, id)
	if err != nil {
		return err
	}
	if err := applyProductFlags(c, &p); err != nil {
		return err
	}

	updated, err := e.catalog.Update(c.Context, id, p)
	if err != nil {
		return err
	}
	if e.json {
		return e.emit(updated)
	}
	e.println("products.updated", updated.ID)
	return nil
}

// applyProductFlags copies the flags given on the command line onto p.
func applyProductFlags(c *cli.Context, p *backend.Product) error {
	if c.IsSet("name") {
		p.Name = c.String("name")
	}
	if c.IsSet("category") {
		p.Category = c.String("category")
	}
	if c.IsSet("description") {
		p.Description = c.String("description")
	}
	if c.IsSet("format") {
		p.DefaultFormat = c.String("format")
	}
	if c.IsSet("large") {
		p.LargeFormat = c.Bool("large")
	}
	if c.IsSet("price") {
		price, err := decimal.NewFromString(c.String("price"))
		if err != nil {
			return fmt.Errorf("invalid price %q", c.String("price"))
		}
		p.Price = price
	}
	return nil
}
