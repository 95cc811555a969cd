package dashboard_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/internal/dashboard"
	"github.com/JaimeStill/printmg/pkg/logging"
	"github.com/JaimeStill/printmg/pkg/pagination"
)

type fakeSource struct {
	adminCalls int
	userCalls  int
	countCalls int
	users      []backend.User
	err        error
}

func (f *fakeSource) AdminDashboard(ctx context.Context) (*backend.AdminDashboard, error) {
	f.adminCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &backend.AdminDashboard{Totals: backend.Totals{Orders: f.adminCalls}}, nil
}

func (f *fakeSource) AdminOrdersCount(ctx context.Context) (int, error) {
	f.countCalls++
	return 40 + f.countCalls, f.err
}

func (f *fakeSource) UserDashboard(ctx context.Context) (*backend.UserDashboard, error) {
	f.userCalls++
	return &backend.UserDashboard{TotalOrders: f.userCalls}, f.err
}

func (f *fakeSource) Users(ctx context.Context) ([]backend.User, error) {
	return f.users, f.err
}

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestStats_TTL(t *testing.T) {
	src := &fakeSource{}
	clk := &clock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	stats := dashboard.NewStats(src, 30*time.Second, logging.Discard(), dashboard.WithClock(clk.now))
	ctx := context.Background()

	steps := []struct {
		name    string
		advance time.Duration
		force   bool
		want    int
	}{
		{"first read fetches", 0, false, 1},
		{"within ttl is cached", 10 * time.Second, false, 1},
		{"just before expiry is cached", 19 * time.Second, false, 1},
		{"at expiry refetches", time.Second, false, 2},
		{"forced refetches", time.Second, true, 3},
		{"after force is cached", time.Second, false, 3},
	}

	for _, step := range steps {
		clk.advance(step.advance)
		d, err := stats.Admin(ctx, step.force)
		if err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		if d.Totals.Orders != step.want || src.adminCalls != step.want {
			t.Errorf("%s: fetch #%d (calls %d), want %d", step.name, d.Totals.Orders, src.adminCalls, step.want)
		}
	}
}

func TestStats_EntriesIndependent(t *testing.T) {
	src := &fakeSource{}
	stats := dashboard.NewStats(src, time.Minute, logging.Discard())
	ctx := context.Background()

	if _, err := stats.User(ctx, false); err != nil {
		t.Fatal(err)
	}
	if _, err := stats.User(ctx, false); err != nil {
		t.Fatal(err)
	}
	n, err := stats.OrdersCount(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if n != 41 {
		t.Errorf("OrdersCount() = %d, want 41", n)
	}
	if src.userCalls != 1 || src.countCalls != 1 || src.adminCalls != 0 {
		t.Errorf("calls user=%d count=%d admin=%d", src.userCalls, src.countCalls, src.adminCalls)
	}

	stats.Invalidate()
	if _, err := stats.User(ctx, false); err != nil {
		t.Fatal(err)
	}
	if src.userCalls != 2 {
		t.Errorf("userCalls after Invalidate = %d, want 2", src.userCalls)
	}
}

func TestStats_ErrorsNotCached(t *testing.T) {
	src := &fakeSource{err: errors.New("boom")}
	stats := dashboard.NewStats(src, time.Minute, logging.Discard())

	if _, err := stats.Admin(context.Background(), false); err == nil {
		t.Fatal("expected error")
	}
	src.err = nil
	if _, err := stats.Admin(context.Background(), false); err != nil {
		t.Fatalf("retry error = %v", err)
	}
	if src.adminCalls != 2 {
		t.Errorf("adminCalls = %d, want 2", src.adminCalls)
	}
}

func TestUsers_List(t *testing.T) {
	joined := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var users []backend.User
	for i := 1; i <= 12; i++ {
		users = append(users, backend.User{
			ID:        i,
			LastName:  fmt.Sprintf("Nom%02d", i),
			FirstName: "Prénom",
			Email:     fmt.Sprintf("user%02d@print.mg", i),
			JoinedAt:  joined.AddDate(0, 0, i),
		})
	}
	users[4].LastName = "Rasoanaivo"
	users[7].FirstName = "Hélène"

	search := func(s string) *string { return &s }

	tests := []struct {
		name      string
		req       pagination.PageRequest
		want      []int
		wantTotal int
	}{
		{"first page of ten", pagination.PageRequest{}, []int{12, 11, 10, 9, 8, 7, 6, 5, 4, 3}, 12},
		{"second page", pagination.PageRequest{Page: 2}, []int{2, 1}, 12},
		{"search last name", pagination.PageRequest{Search: search("rasoa")}, []int{5}, 1},
		{"search first name without accents", pagination.PageRequest{Search: search("helene")}, []int{8}, 1},
		{"search email", pagination.PageRequest{Search: search("user03@")}, []int{3}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := dashboard.NewUsers(&fakeSource{users: users}, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
			got, err := list.List(context.Background(), tt.req)
			if err != nil {
				t.Fatal(err)
			}
			ids := make([]int, len(got.Data))
			for i, u := range got.Data {
				ids[i] = u.ID
			}
			if !slices.Equal(ids, tt.want) {
				t.Errorf("ids = %v, want %v", ids, tt.want)
			}
			if got.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", got.Total, tt.wantTotal)
			}
		})
	}
}
