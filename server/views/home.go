package views

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/topi314/club-recruitment/internal/tsync"
	"github.com/topi314/club-recruitment/server/api"
)

type FeedSource interface {
	GetEvents(ctx context.Context) ([]api.Event, error)
	GetBuzz(ctx context.Context) ([]api.Buzz, error)
}

type Feed struct {
	Events []api.Event
	Buzz   []api.Buzz
}

type Home struct {
	Status
	Clubs []api.Club
	Feed  Feed
}

// FetchFeed fetches events and buzz as one pair. Both fetches always run to
// completion and their errors are joined.
func FetchFeed(ctx context.Context, src FeedSource) (Feed, error) {
	var feed Feed

	eg, egCtx := tsync.ErrorGroupWithContext(ctx)
	eg.Go(func() error {
		events, err := src.GetEvents(egCtx)
		if err != nil {
			return fmt.Errorf("failed to fetch events: %w", err)
		}
		feed.Events = events
		return nil
	})
	eg.Go(func() error {
		buzz, err := src.GetBuzz(egCtx)
		if err != nil {
			return fmt.Errorf("failed to fetch buzz: %w", err)
		}
		feed.Buzz = buzz
		return nil
	})

	if err := eg.Wait(); err != nil {
		return Feed{}, err
	}
	return feed, nil
}

type HomeSource interface {
	ClubLister
	FeedSource
}

// LoadHome runs the mount fetches. Only a failed club fetch is a page error;
// a failed feed leaves its sections empty.
func LoadHome(ctx context.Context, src HomeSource) Home {
	var h Home

	var eg errgroup.Group
	eg.Go(func() error {
		clubs, err := src.GetClubs(ctx)
		if err != nil {
			return err
		}
		h.Clubs = clubs
		return nil
	})
	eg.Go(func() error {
		feed, err := FetchFeed(ctx, src)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to fetch home feed", slog.Any("err", err))
			return nil
		}
		h.Feed = feed
		return nil
	})

	if err := eg.Wait(); err != nil {
		slog.ErrorContext(ctx, "Failed to fetch clubs", slog.Any("err", err))
		h.Clubs = nil
		h.Fail(ErrFetchClubs)
		return h
	}
	h.Ready()
	return h
}
