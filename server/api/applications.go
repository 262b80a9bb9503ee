package api

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) Apply(ctx context.Context, studentID int, clubID int) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.Do(ctx, http.MethodPost, fmt.Sprintf("/apply/%d/%d", studentID, clubID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetStudentApplications(ctx context.Context, studentID int) ([]StudentApplication, error) {
	var applications []StudentApplication
	if err := c.get(ctx, fmt.Sprintf("/applications/%d", studentID), &applications); err != nil {
		return nil, err
	}
	return applications, nil
}

func (c *Client) GetClubApplications(ctx context.Context, clubID int) ([]ClubApplication, error) {
	var applications []ClubApplication
	if err := c.get(ctx, fmt.Sprintf("/applications/club/%d", clubID), &applications); err != nil {
		return nil, err
	}
	return applications, nil
}
