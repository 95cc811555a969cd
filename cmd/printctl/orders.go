package main

import (
	"context"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/internal/history"
	"github.com/JaimeStill/printmg/pkg/money"
	"github.com/JaimeStill/printmg/pkg/pagination"
)

func (e *env) ordersCommand() *cli.Command {
	return &cli.Command{
		Name:  "orders",
		Usage: "follow placed orders",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list your orders, or every order with --all",
				Flags: append(pageFlags(),
					&cli.StringFlag{Name: "status", Usage: "status code, e.g. EN_ATTENTE"},
					&cli.BoolFlag{Name: "all", Usage: "every customer's orders (admin)"},
				),
				Action: func(c *cli.Context) error {
					path := "/commande/historique"
					if c.Bool("all") {
						path = "/admin/commandes"
					}
					return e.gated(path, e.listOrders)(c)
				},
			},
			{
				Name:   "trash",
				Usage:  "list deleted orders",
				Flags:  pageFlags(),
				Action: e.gated("/corbeille", e.listTrash),
			},
			e.orderAction("delete", "move an order to the trash", "/commande", "orders.deleted", (*history.History).Delete),
			e.orderAction("restore", "restore an order from the trash", "/corbeille", "orders.restored", (*history.History).Restore),
			e.orderAction("purge", "delete an order permanently", "/corbeille", "orders.purged", (*history.History).Purge),
		},
	}
}

// orderAction builds a command applying op to the order named by its argument.
func (e *env) orderAction(name, usage, path, done string, op func(*history.History, context.Context, int) error) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<id>",
		Action: e.gated(path, func(c *cli.Context) error {
			id, err := argID(c)
			if err != nil {
				return err
			}
			if err := op(e.history, c.Context, id); err != nil {
				return err
			}
			e.println(done, id)
			return nil
		}),
	}
}

func (e *env) listOrders(c *cli.Context) error {
	filter := history.Filter{Status: c.String("status"), All: c.Bool("all")}
	res, err := e.history.List(c.Context, filter, pageRequest(c))
	if err != nil {
		return err
	}
	return e.printOrders(res, filter.All, "orders.empty")
}

func (e *env) listTrash(c *cli.Context) error {
	res, err := e.history.Trash(c.Context, pageRequest(c))
	if err != nil {
		return err
	}
	return e.printOrders(res, false, "orders.trash_empty")
}

func (e *env) printOrders(res pagination.PageResult[backend.Order], customers bool, empty string) error {
	if e.json {
		return e.emit(res)
	}
	if res.Total == 0 {
		e.println(empty)
		return nil
	}

	headers := []string{"orders.header.id", "orders.header.date", "orders.header.status", "orders.header.amount", "orders.header.file", "orders.header.payment"}
	if customers {
		headers = append(headers, "orders.header.customer")
	}

	t := e.table(headers...)
	for _, o := range res.Data {
		file := "-"
		if len(o.Files) > 0 {
			file = o.Files[0].Name
		}
		cells := []string{
			strconv.Itoa(o.ID),
			date(o.CreatedAt),
			e.tr.StatusLabel(o.Status),
			e.tr.Amount(money.FromDecimal(o.Amount)),
			file,
			o.PaymentStatus,
		}
		if customers {
			cells = append(cells, o.Customer)
		}
		t.row(cells...)
	}
	if err := t.flush(); err != nil {
		return err
	}
	footer(e, res)
	return nil
}
