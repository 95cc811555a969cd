package backend

import "context"

// AdminDashboard returns platform-wide statistics. Administrators only.
func (c *Client) AdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	var d AdminDashboard
	if err := c.getJSON(ctx, "/api/admin/dashboard/", true, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// AdminOrdersCount returns the total number of orders. Administrators only.
func (c *Client) AdminOrdersCount(ctx context.Context) (int, error) {
	var out Count
	if err := c.getJSON(ctx, "/api/admin/commandes/count/", true, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// Users lists every account. Administrators only.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.getJSON(ctx, "/api/users/", true, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserDashboard returns the statistics of the signed-in user.
func (c *Client) UserDashboard(ctx context.Context) (*UserDashboard, error) {
	var d UserDashboard
	if err := c.getJSON(ctx, "/api/user/dashboard-stats/", true, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
