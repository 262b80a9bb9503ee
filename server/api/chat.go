package api

import (
	"context"
	"net/http"
)

// Chat sends one stateless chatbot turn. No conversation id or history is sent.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var reply ChatReply
	if err := c.Do(ctx, http.MethodPost, "/chatbot", ChatRequest{Message: message}, &reply); err != nil {
		return "", err
	}
	if reply.Response == nil {
		return "", malformed(http.MethodPost, "/chatbot", "response")
	}
	return *reply.Response, nil
}
