package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	ics "github.com/arran4/golang-ical"
)

// EventsCalendar exports every event the backend lists as an iCalendar feed.
func (h *handler) EventsCalendar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	events, err := h.API.GetEvents(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to fetch events for calendar", slog.Any("err", err))
		http.Error(w, "Failed to fetch events. Is the backend running?", http.StatusBadGateway)
		return
	}

	host := "club-recruitment"
	if u, err := url.Parse(h.Cfg.Server.PublicURL); err == nil && u.Host != "" {
		host = u.Host
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//club-recruitment//events//EN")
	cal.SetXWRCalName("Club Events")

	now := time.Now()
	for _, event := range events {
		if event.Date.IsZero() {
			continue
		}

		e := cal.AddEvent(fmt.Sprintf("event-%d@%s", event.ID, host))
		e.SetDtStampTime(now)
		e.SetStartAt(event.Date.Time)
		e.SetEndAt(event.Date.Add(time.Hour))
		e.SetSummary(event.Name)
		if event.Location != "" {
			e.SetLocation(event.Location)
		}
		if event.ClubName != "" {
			e.SetDescription("Hosted by " + event.ClubName)
		}
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="events.ics"`)
	if err = cal.SerializeTo(w); err != nil {
		slog.ErrorContext(ctx, "Failed to write calendar", slog.Any("err", err))
	}
}
