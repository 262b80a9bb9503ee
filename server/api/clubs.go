package api

import (
	"context"
	"fmt"
)

func (c *Client) GetClubs(ctx context.Context) ([]Club, error) {
	var clubs []Club
	if err := c.get(ctx, "/clubs", &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

func (c *Client) GetCoordinatorClub(ctx context.Context, coordinatorID int) (*Club, error) {
	var club Club
	if err := c.get(ctx, fmt.Sprintf("/clubs/coordinator/%d", coordinatorID), &club); err != nil {
		return nil, err
	}
	return &club, nil
}

func (c *Client) GetClubEvents(ctx context.Context, clubID int) ([]Event, error) {
	var resp clubEventsResp
	if err := c.get(ctx, fmt.Sprintf("/clubs/%d/events", clubID), &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

func (c *Client) GetClubFeedback(ctx context.Context, clubID int) ([]Feedback, error) {
	var feedback []Feedback
	if err := c.get(ctx, fmt.Sprintf("/feedback/club/%d", clubID), &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (c *Client) GetRecommendations(ctx context.Context, userID int) ([]Recommendation, error) {
	var resp recommendationsResp
	if err := c.get(ctx, fmt.Sprintf("/recommendations/%d", userID), &resp); err != nil {
		return nil, err
	}
	return resp.Recommendations, nil
}
