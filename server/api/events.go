package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func (c *Client) GetEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	if err := c.get(ctx, "/events", &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) GetBuzz(ctx context.Context) ([]Buzz, error) {
	var resp buzzResp
	if err := c.get(ctx, "/buzz", &resp); err != nil {
		return nil, err
	}
	return resp.BuzzData, nil
}

func (c *Client) GenerateQR(ctx context.Context, eventID int) (*QRCode, error) {
	path := fmt.Sprintf("/generate_qr/%d", eventID)

	var qr QRCode
	if err := c.get(ctx, path, &qr); err != nil {
		return nil, err
	}
	if qr.ImageBase64 == "" {
		return nil, malformed(http.MethodGet, path, "image_base64")
	}
	return &qr, nil
}

func (c *Client) GetEventAttendees(ctx context.Context, eventID int) (*Attendees, error) {
	var attendees Attendees
	if err := c.get(ctx, fmt.Sprintf("/events/%d/attendees", eventID), &attendees); err != nil {
		return nil, err
	}
	return &attendees, nil
}

func (c *Client) CheckIn(ctx context.Context, key string, userID int) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.Do(ctx, http.MethodPost, fmt.Sprintf("/checkin/%s/%d", url.PathEscape(key), userID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
