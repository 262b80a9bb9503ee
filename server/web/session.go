package web

import (
	"log/slog"
	"net/http"

	"github.com/topi314/club-recruitment/internal/xquery"
	"github.com/topi314/club-recruitment/server/session"
)

type SessionVars struct {
	Layout
	Defaults session.Identity
	Error    string
}

func (h *handler) Session(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "session.gohtml", SessionVars{
		Layout:   h.layout(r, "Session"),
		Defaults: h.Sessions.Defaults(),
	})
}

// UpdateSession switches the identity the browser acts as.
func (h *handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(ctx, "Failed to parse form", slog.Any("err", err))
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	studentID, studentOK := xquery.ParseID(r.FormValue("student_id"))
	coordinatorID, coordinatorOK := xquery.ParseID(r.FormValue("coordinator_id"))
	if !studentOK || !coordinatorOK {
		h.renderStatus(w, r, http.StatusUnprocessableEntity, "session.gohtml", SessionVars{
			Layout:   h.layout(r, "Session"),
			Defaults: h.Sessions.Defaults(),
			Error:    "Ids must be positive numbers.",
		})
		return
	}

	h.setIdentity(w, r, session.Identity{
		StudentID:     studentID,
		CoordinatorID: coordinatorID,
	})
}

func (h *handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	h.Chat.Delete(session.Get(r.Context()).ID)
	h.setIdentity(w, r, h.Sessions.Defaults())
}

func (h *handler) setIdentity(w http.ResponseWriter, r *http.Request, identity session.Identity) {
	ctx := r.Context()

	if _, err := h.Sessions.SetIdentity(ctx, identity); err != nil {
		slog.ErrorContext(ctx, "Failed to update session identity", slog.Any("err", err))
		http.Error(w, "Failed to update session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/session", http.StatusSeeOther)
}
