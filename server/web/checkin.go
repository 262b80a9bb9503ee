package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/topi314/club-recruitment/server/api"
	"github.com/topi314/club-recruitment/server/session"
)

const errCheckIn = "Check-in failed. Please try again."

type CheckInVars struct {
	Layout
	Key     string
	Message string
	Success bool
}

func (h *handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "checkin.gohtml", CheckInVars{
		Layout: h.layout(r, "Check In"),
		Key:    strings.TrimSpace(r.URL.Query().Get("key")),
	})
}

func (h *handler) DoCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(ctx, "Failed to parse form", slog.Any("err", err))
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	vars := CheckInVars{
		Layout: h.layout(r, "Check In"),
		Key:    strings.TrimSpace(r.FormValue("key")),
	}
	if vars.Key == "" {
		vars.Message = "Please enter a check-in key."
		h.renderStatus(w, r, http.StatusUnprocessableEntity, "checkin.gohtml", vars)
		return
	}

	identity := session.Get(ctx).Identity()
	rs, err := h.API.CheckIn(ctx, vars.Key, identity.StudentID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to check in", slog.Int("student_id", identity.StudentID), slog.Any("err", err))
		vars.Message = api.Message(err, errCheckIn)
	} else {
		vars.Message = rs.Message
		vars.Success = true
	}

	h.render(w, r, "checkin.gohtml", vars)
}
