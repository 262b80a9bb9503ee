package web

import (
	"log/slog"
	"net/http"

	"github.com/topi314/club-recruitment/internal/xquery"
	"github.com/topi314/club-recruitment/server/api"
	"github.com/topi314/club-recruitment/server/session"
	"github.com/topi314/club-recruitment/server/views"
)

type DashboardVars struct {
	Layout
	views.StudentDashboard
}

func (h *handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := session.Get(ctx).Identity()

	h.render(w, r, "dashboard.gohtml", DashboardVars{
		Layout:           h.layout(r, "Dashboard"),
		StudentDashboard: views.LoadStudentDashboard(ctx, h.API, identity.StudentID),
	})
}

type OfficerDashboardVars struct {
	Layout
	views.OfficerDashboard
}

func (h *handler) OfficerDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := session.Get(ctx).Identity()

	d := views.LoadOfficerDashboard(ctx, h.API, identity.CoordinatorID)
	if d.IsReady() {
		if eventID, ok := xquery.ParseID(r.URL.Query().Get("qr")); ok {
			d.QR = views.LoadQR(ctx, h.API, eventID)
		}
	}

	h.render(w, r, "officer_dashboard.gohtml", OfficerDashboardVars{
		Layout:           h.layout(r, "Officer Dashboard"),
		OfficerDashboard: d,
	})
}

// EventQRCode streams the decoded check-in QR of an event.
func (h *handler) EventQRCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	eventID, ok := xquery.ParseID(r.PathValue("event_id"))
	if !ok {
		h.NotFound(w, r)
		return
	}

	png, err := views.FetchQR(ctx, h.API, eventID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to fetch event qr code", slog.Int("event_id", eventID), slog.Any("err", err))
		http.Error(w, views.ErrQRCode, http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", "inline; filename=\"event-qr.png\"")
	if _, err = w.Write(png); err != nil {
		slog.DebugContext(ctx, "Failed to write qr code", slog.Any("err", err))
	}
}

type AttendeesVars struct {
	Layout
	EventID   int
	Attendees *api.Attendees
	Error     string
}

func (h *handler) EventAttendees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	eventID, ok := xquery.ParseID(r.PathValue("event_id"))
	if !ok {
		h.NotFound(w, r)
		return
	}

	vars := AttendeesVars{
		Layout:  h.layout(r, "Attendees"),
		EventID: eventID,
	}

	attendees, err := h.API.GetEventAttendees(ctx, eventID)
	if err != nil {
		if api.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		slog.ErrorContext(ctx, "Failed to fetch attendees", slog.Int("event_id", eventID), slog.Any("err", err))
		vars.Error = "Failed to fetch attendees. Is the backend running?"
	}
	vars.Attendees = attendees

	h.render(w, r, "attendees.gohtml", vars)
}
