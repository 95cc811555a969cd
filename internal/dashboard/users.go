package dashboard

import (
	"context"

	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/pkg/pagination"
	"github.com/JaimeStill/printmg/pkg/query"
)

// UsersPageSize is the number of users per page of the admin list.
const UsersPageSize = 10

var userComparators = query.Comparators[backend.User]{
	"id":               query.Compare(func(u backend.User) int { return u.ID }),
	"nom":              query.Compare(func(u backend.User) string { return query.Fold(u.LastName) }),
	"email":            query.Compare(func(u backend.User) string { return u.Email }),
	"date_inscription": func(a, b backend.User) int { return a.JoinedAt.Compare(b.JoinedAt) },
}

// Users lists platform accounts for administrators. Search covers last name,
// first name and email.
type Users struct {
	source     Source
	pagination pagination.Config
}

// NewUsers creates the admin user list. Pages default to UsersPageSize.
func NewUsers(source Source, cfg pagination.Config) *Users {
	cfg.DefaultPageSize = UsersPageSize
	if cfg.MaxPageSize < UsersPageSize {
		cfg.MaxPageSize = UsersPageSize
	}
	return &Users{source: source, pagination: cfg}
}

// List returns a page of users, most recently joined first.
func (u *Users) List(ctx context.Context, req pagination.PageRequest) (pagination.PageResult[backend.User], error) {
	users, err := u.source.Users(ctx)
	if err != nil {
		return pagination.PageResult[backend.User]{}, err
	}

	matched := make([]backend.User, 0, len(users))
	for _, user := range users {
		if query.MatchAny(req.Search, user.LastName, user.FirstName, user.Email) {
			matched = append(matched, user)
		}
	}

	req.Normalize(u.pagination)
	query.Sort(matched, req.Sort, userComparators, query.SortField{Field: "date_inscription", Descending: true})
	return pagination.Paginate(matched, req), nil
}
