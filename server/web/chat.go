package web

import (
	"log/slog"
	"net/http"

	"github.com/topi314/club-recruitment/server/session"
)

// SendChat runs one chatbot turn for the session's transcript and sends the
// browser back to the page the widget lives on.
func (h *handler) SendChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(ctx, "Failed to parse form", slog.Any("err", err))
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	transcript := h.Chat.Get(session.Get(ctx).ID)
	if !transcript.Open() {
		transcript.Toggle()
	}
	transcript.Send(ctx, h.API, r.FormValue("message"))

	redirectBack(w, r, "/")
}

func (h *handler) ToggleChat(w http.ResponseWriter, r *http.Request) {
	h.Chat.Get(session.Get(r.Context()).ID).Toggle()
	redirectBack(w, r, "/")
}
