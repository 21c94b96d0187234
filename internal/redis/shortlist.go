package redis

import (
	"context"
	"strings"

	"companion-matcher/internal/apperr"
)

// Shortlist stores each user's favorited identifiers as a Redis set under
// shortlist:<username>. It satisfies store.ShortlistRegistry.
type Shortlist struct {
	client *Client
}

func NewShortlist(client *Client) *Shortlist {
	return &Shortlist{client: client}
}

func shortlistKey(username string) string {
	return "shortlist:" + strings.ToLower(strings.TrimSpace(username))
}

func (s *Shortlist) Add(ctx context.Context, username, target string) error {
	err := s.client.SAdd(ctx, shortlistKey(username), strings.ToLower(strings.TrimSpace(target)))
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Internal server error", err)
	}
	return nil
}

func (s *Shortlist) Members(ctx context.Context, username string) ([]string, error) {
	members, err := s.client.SMembers(ctx, shortlistKey(username))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Internal server error", err)
	}
	return members, nil
}
