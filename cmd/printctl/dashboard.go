package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/internal/notifications"
	"github.com/JaimeStill/printmg/pkg/money"
)

func (e *env) dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "show your activity",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "refresh", Usage: "bypass the cached figures"},
		},
		Action: e.gated("/dashboard", func(c *cli.Context) error {
			d, err := e.stats.User(c.Context, c.Bool("refresh"))
			if err != nil {
				return err
			}
			if e.json {
				return e.emit(d)
			}

			e.figure("dashboard.orders", strconv.Itoa(d.TotalOrders))
			e.figure("dashboard.amount", e.tr.Amount(money.FromDecimal(d.TotalAmount)))
			e.figure("dashboard.files", strconv.Itoa(d.TotalFiles))
			e.figure("dashboard.unread", strconv.Itoa(d.UnreadNotifications))
			e.printMonths(d.ByMonth)

			if len(d.RecentOrders) > 0 {
				fmt.Fprintln(e.out)
				e.println("dashboard.recent_orders")
				t := e.table("orders.header.id", "orders.header.date", "orders.header.status", "orders.header.amount")
				for _, o := range d.RecentOrders {
					t.row(strconv.Itoa(o.ID), date(o.CreatedAt), e.tr.StatusLabel(o.Status), e.tr.Amount(money.FromDecimal(o.Amount)))
				}
				return t.flush()
			}
			return nil
		}),
	}
}

func (e *env) adminCommand() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "administer the platform",
		Subcommands: []*cli.Command{
			{
				Name:  "stats",
				Usage: "show platform statistics",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "refresh", Usage: "bypass the cached figures"},
				},
				Action: e.gated("/admin", e.adminStats),
			},
			{
				Name:  "count",
				Usage: "show the total number of orders",
				Action: e.gated("/admin", func(c *cli.Context) error {
					n, err := e.stats.OrdersCount(c.Context, false)
					if err != nil {
						return err
					}
					if e.json {
						return e.emit(backend.Count{Count: n})
					}
					e.println("admin.count", n)
					return nil
				}),
			},
			{
				Name:   "users",
				Usage:  "list accounts",
				Flags:  pageFlags(),
				Action: e.gated("/admin/utilisateurs", e.adminUsers),
			},
			{
				Name:      "status",
				Usage:     "change the status of an order",
				ArgsUsage: "<id> <status>",
				Action: e.gated("/admin/commandes", func(c *cli.Context) error {
					id, err := argID(c)
					if err != nil {
						return err
					}
					status := strings.ToUpper(c.Args().Get(1))
					if status == "" {
						return fmt.Errorf("status: one of %s required", strings.Join(backend.OrderStatuses, ", "))
					}
					if err := e.client.UpdateOrderStatus(c.Context, id, status); err != nil {
						return err
					}
					e.stats.Invalidate()
					e.println("admin.status_updated", id, e.tr.StatusLabel(status))
					return nil
				}),
			},
			{
				Name:  "inbox",
				Usage: "list the messages customers sent to the shop",
				Flags: append(pageFlags(),
					&cli.StringFlag{Name: "read", Value: string(notifications.ReadAll), Usage: "all, unread or read"},
				),
				Action: e.gated("/admin/notifications", func(c *cli.Context) error {
					read, err := notifications.ParseReadState(c.String("read"))
					if err != nil {
						return err
					}
					res, err := e.inbox.List(c.Context, notifications.Filter{Tab: notifications.TabCustomers, Read: read}, pageRequest(c))
					if err != nil {
						return err
					}
					return e.printNotifications(res)
				}),
			},
			{
				Name:      "notify",
				Usage:     "send a message to a user",
				ArgsUsage: "<user-id> <message>",
				Action: e.gated("/admin/notifications", func(c *cli.Context) error {
					id, err := argID(c)
					if err != nil {
						return err
					}
					message := strings.TrimSpace(strings.Join(c.Args().Tail(), " "))
					if message == "" {
						return fmt.Errorf("notify: message required")
					}
					if err := e.client.SendToUser(c.Context, id, message); err != nil {
						return err
					}
					e.println("admin.notified", id)
					return nil
				}),
			},
		},
	}
}

func (e *env) adminStats(c *cli.Context) error {
	d, err := e.stats.Admin(c.Context, c.Bool("refresh"))
	if err != nil {
		return err
	}
	if e.json {
		return e.emit(d)
	}

	e.figure("dashboard.users", strconv.Itoa(d.Totals.Users))
	e.figure("dashboard.orders", strconv.Itoa(d.Totals.Orders))
	e.figure("dashboard.products", strconv.Itoa(d.Totals.Products))
	e.figure("dashboard.files", strconv.Itoa(d.Totals.Files))
	e.figure("dashboard.revenue", e.tr.Amount(money.FromDecimal(d.Totals.Revenue)))
	e.printMonths(d.ByMonth)

	if len(d.ByStatus) > 0 {
		fmt.Fprintln(e.out)
		e.println("dashboard.by_status")
		for _, s := range d.ByStatus {
			fmt.Fprintf(e.out, "  %-24s %d\n", e.tr.StatusLabel(s.Status), s.Count)
		}
	}

	if len(d.RecentOrders) > 0 {
		fmt.Fprintln(e.out)
		e.println("dashboard.recent_orders")
		t := e.table("orders.header.id", "orders.header.date", "orders.header.customer", "orders.header.status", "orders.header.amount")
		for _, o := range d.RecentOrders {
			t.row(strconv.Itoa(o.ID), date(o.CreatedAt), o.FirstName+" "+o.LastName, e.tr.StatusLabel(o.Status), e.tr.Amount(money.FromDecimal(o.Amount)))
		}
		if err := t.flush(); err != nil {
			return err
		}
	}

	if len(d.RecentUsers) > 0 {
		fmt.Fprintln(e.out)
		e.println("dashboard.recent_users")
		t := e.table("users.header.name", "users.header.email", "users.header.joined")
		for _, u := range d.RecentUsers {
			t.row(u.FirstName+" "+u.LastName, u.Email, date(u.JoinedAt))
		}
		return t.flush()
	}
	return nil
}

func (e *env) adminUsers(c *cli.Context) error {
	res, err := e.users.List(c.Context, pageRequest(c))
	if err != nil {
		return err
	}
	if e.json {
		return e.emit(res)
	}

	t := e.table("users.header.name", "users.header.email", "users.header.role", "users.header.joined")
	for _, u := range res.Data {
		t.row(u.FirstName+" "+u.LastName, u.Email, u.Role, date(u.JoinedAt))
	}
	if err := t.flush(); err != nil {
		return err
	}
	footer(e, res)
	return nil
}

func (e *env) figure(key, value string) {
	fmt.Fprintf(e.out, "%-24s %s\n", e.tr.T(key), value)
}

func (e *env) printMonths(months []backend.MonthlyCount) {
	if len(months) == 0 {
		return
	}
	fmt.Fprintln(e.out)
	e.println("dashboard.by_month")
	for _, m := range months {
		fmt.Fprintf(e.out, "  %s  %s\n", m.Month, strings.Repeat("#", m.Count))
	}
}
