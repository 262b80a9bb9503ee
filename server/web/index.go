package web

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/topi314/club-recruitment/internal/xerrors"
	"github.com/topi314/club-recruitment/server/poll"
	"github.com/topi314/club-recruitment/server/views"
)

type IndexVars struct {
	Layout
	views.Home
}

func (h *handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "index.gohtml", IndexVars{
		Layout: h.layout(r, "Home"),
		Home:   views.LoadHome(r.Context(), h.API),
	})
}

// HomeLive streams the events and buzz sections of the home page. The page
// already fetched them on load, so the first fetch happens after one interval.
func (h *handler) HomeLive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	setEventStreamHeaders(w)
	if _, err := fmt.Fprint(w, ": connected\n\n"); err != nil {
		return
	}
	flusher.Flush()

	var (
		mu     sync.Mutex
		latest poll.Latest[views.Feed]
	)
	poller := poll.New(h.Cfg.Home.PollInterval.Std(), func(ctx context.Context, seq uint64) {
		feed, err := views.FetchFeed(ctx, h.API)
		if err != nil {
			for _, fetchErr := range xerrors.Unwrap(err) {
				slog.ErrorContext(ctx, "Failed to refresh home feed", slog.Uint64("seq", seq), slog.Any("err", fetchErr))
			}
			return
		}

		mu.Lock()
		defer mu.Unlock()

		if !latest.Apply(seq, feed) {
			slog.DebugContext(ctx, "Dropping stale home feed", slog.Uint64("seq", seq))
			return
		}
		if err = h.writeFeedEvent(w, feed); err != nil {
			slog.ErrorContext(ctx, "Failed to write home feed", slog.Any("err", err))
			return
		}
		flusher.Flush()
	})

	poller.Run(ctx)
	slog.DebugContext(ctx, "Home feed stream closed")
}

func (h *handler) writeFeedEvent(w http.ResponseWriter, feed views.Feed) error {
	buf := &bytes.Buffer{}
	if err := h.Templates().ExecuteTemplate(buf, "home_feed", feed); err != nil {
		return fmt.Errorf("failed to render home feed: %w", err)
	}

	var event strings.Builder
	event.WriteString("event: feed\n")
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		event.WriteString("data: ")
		event.WriteString(line)
		event.WriteString("\n")
	}
	event.WriteString("\n")

	_, err := w.Write([]byte(event.String()))
	return err
}
