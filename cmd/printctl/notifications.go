package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/internal/lifecycle"
	"github.com/JaimeStill/printmg/internal/notifications"
	"github.com/JaimeStill/printmg/pkg/pagination"
)

const watchShutdownTimeout = 5 * time.Second

func (e *env) notificationsCommand() *cli.Command {
	return &cli.Command{
		Name:    "notifications",
		Aliases: []string{"notif"},
		Usage:   "read and send messages",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list received or sent notifications",
				Flags: append(pageFlags(),
					&cli.StringFlag{Name: "tab", Value: string(notifications.TabReceived), Usage: "received or sent"},
					&cli.StringFlag{Name: "read", Value: string(notifications.ReadAll), Usage: "all, unread or read"},
				),
				Action: e.gated("/notifications", e.listNotifications),
			},
			{
				Name:  "trash",
				Usage: "list deleted notifications",
				Flags: pageFlags(),
				Action: e.gated("/corbeille", func(c *cli.Context) error {
					res, err := e.inbox.Trash(c.Context, pageRequest(c))
					if err != nil {
						return err
					}
					return e.printNotifications(res)
				}),
			},
			{
				Name:      "send",
				Usage:     "send a message to the administrators",
				ArgsUsage: "<message>",
				Action: e.gated("/notifications", func(c *cli.Context) error {
					if err := e.inbox.Send(c.Context, strings.Join(c.Args().Slice(), " ")); err != nil {
						return err
					}
					e.println("notifications.sent")
					return nil
				}),
			},
			{
				Name:  "open",
				Usage: "mark every notification read",
				Action: e.gated("/notifications", func(c *cli.Context) error {
					if _, err := e.inbox.Open(c.Context); err != nil {
						return err
					}
					e.println("notifications.all_read")
					return nil
				}),
			},
			{
				Name:  "unread",
				Usage: "show the unread count",
				Action: e.gated("/notifications", func(c *cli.Context) error {
					n, err := e.inbox.Unread(c.Context)
					if err != nil {
						return err
					}
					if e.json {
						return e.emit(backend.UnreadCount{UnreadCount: n})
					}
					e.println("notifications.unread", n)
					return nil
				}),
			},
			{
				Name:  "watch",
				Usage: "poll the unread count until interrupted",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "for", Usage: "stop after this long"},
				},
				Action: e.gated("/notifications", e.watchNotifications),
			},
			e.notificationAction("delete", "move a notification to the trash", "notifications.deleted", (*notifications.Inbox).Delete),
			e.notificationAction("restore", "restore a notification from the trash", "notifications.restored", (*notifications.Inbox).Restore),
			e.notificationAction("purge", "delete a notification permanently", "notifications.purged", (*notifications.Inbox).Purge),
		},
	}
}

func (e *env) notificationAction(name, usage, done string, op func(*notifications.Inbox, context.Context, int) error) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<id>",
		Action: e.gated("/notifications", func(c *cli.Context) error {
			id, err := argID(c)
			if err != nil {
				return err
			}
			if err := op(e.inbox, c.Context, id); err != nil {
				return err
			}
			e.println(done, id)
			return nil
		}),
	}
}

func (e *env) listNotifications(c *cli.Context) error {
	tab, err := notifications.ParseTab(c.String("tab"))
	if err != nil {
		return err
	}
	read, err := notifications.ParseReadState(c.String("read"))
	if err != nil {
		return err
	}

	res, err := e.inbox.List(c.Context, notifications.Filter{Tab: tab, Read: read}, pageRequest(c))
	if err != nil {
		return err
	}
	return e.printNotifications(res)
}

func (e *env) printNotifications(res pagination.PageResult[backend.Notification]) error {
	if e.json {
		return e.emit(res)
	}
	if res.Total == 0 {
		e.println("notifications.empty")
		return nil
	}

	now := time.Now()
	t := e.table("notifications.header.id", "notifications.header.date", "notifications.header.from", "notifications.header.message", "")
	for _, n := range res.Data {
		from := "-"
		if n.Sender != nil {
			from = strings.TrimSpace(n.Sender.FirstName + " " + n.Sender.LastName)
		}
		flag := ""
		if notifications.IsNew(n, now) {
			flag = e.tr.T("notifications.new")
		}
		t.row(strconv.Itoa(n.ID), date(n.CreatedAt), from, truncate(n.Message, 60), flag)
	}
	if err := t.flush(); err != nil {
		return err
	}
	footer(e, res)
	return nil
}

// watchNotifications runs the unread poller under its own coordinator and
// prints every change of the count.
func (e *env) watchNotifications(c *cli.Context) error {
	lc := lifecycle.New()
	poller := notifications.NewPoller(e.client, e.cfg.Polling.UnreadIntervalDuration(), func(n int) {
		e.println("notifications.unread", n)
	}, e.logger)

	if err := poller.Start(lc); err != nil {
		return err
	}
	lc.WaitForStartup()

	var limit <-chan time.Time
	if d := c.Duration("for"); d > 0 {
		limit = time.After(d)
	}
	select {
	case <-c.Context.Done():
	case <-limit:
	}

	if err := lc.Shutdown(watchShutdownTimeout); err != nil {
		return fmt.Errorf("poller shutdown: %w", err)
	}
	if _, ok := poller.Count(); !ok {
		return errors.New(e.tr.T("app.generic_error"))
	}
	return nil
}
