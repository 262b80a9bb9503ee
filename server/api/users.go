package api

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) Register(ctx context.Context, registration Registration) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.Do(ctx, http.MethodPost, "/register", registration, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetProfile(ctx context.Context, userID int) (*Profile, error) {
	var profile Profile
	if err := c.get(ctx, fmt.Sprintf("/user/profile/%d", userID), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, userID int, update ProfileUpdate) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/profile/%d", userID), update, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
