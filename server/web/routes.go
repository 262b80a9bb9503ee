package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/topi314/club-recruitment/internal/middlewares"
	"github.com/topi314/club-recruitment/server"
)

type handler struct {
	*server.Server
}

func Routes(srv *server.Server) http.Handler {
	h := &handler{
		Server: srv,
	}

	fileServer := http.FileServer(h.StaticFS)
	var fs http.Handler
	if srv.Cfg.Dev {
		fs = fileServer
	} else {
		fs = middlewares.Cache(fileServer)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /home/live", h.HomeLive)
	mux.HandleFunc("GET /events.ics", h.EventsCalendar)

	mux.HandleFunc("GET  /directory", h.Directory)
	mux.HandleFunc("POST /directory/apply/{club_id}", h.Apply)
	mux.HandleFunc("GET  /directory/clubs/{club_id}/qr.png", h.ClubQRCode)

	mux.HandleFunc("GET  /register", h.Register)
	mux.HandleFunc("POST /register", h.DoRegister)

	mux.HandleFunc("GET  /profile", h.Profile)
	mux.HandleFunc("POST /profile", h.UpdateProfile)

	mux.HandleFunc("GET /dashboard", h.Dashboard)

	mux.HandleFunc("GET /officer-dashboard", h.OfficerDashboard)
	mux.HandleFunc("GET /officer-dashboard/events/{event_id}/qr.png", h.EventQRCode)
	mux.HandleFunc("GET /officer-dashboard/events/{event_id}/attendees", h.EventAttendees)
	mux.HandleFunc("GET /officer-dashboard/applications.csv", h.ExportApplicationsCSV)
	mux.HandleFunc("GET /officer-dashboard/applications.xlsx", h.ExportApplicationsXLSX)

	mux.HandleFunc("GET  /checkin", h.CheckIn)
	mux.HandleFunc("POST /checkin", h.DoCheckIn)

	mux.HandleFunc("POST /chat", h.SendChat)
	mux.HandleFunc("POST /chat/toggle", h.ToggleChat)

	mux.HandleFunc("GET  /session", h.Session)
	mux.HandleFunc("POST /session", h.UpdateSession)
	mux.HandleFunc("POST /session/reset", h.ResetSession)

	mux.Handle("GET  /static/", fs)
	mux.Handle("HEAD /static/", fs)

	if srv.Cfg.Dev {
		mux.HandleFunc("GET /dev/reload", h.DevReload)
	}

	mux.HandleFunc("/", h.NotFound)

	return h.Sessions.Middleware(middlewares.NoStore(mux))
}

func (h *handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderStatus(w, r, http.StatusNotFound, "not_found.gohtml", NotFoundVars{
		Layout: h.layout(r, "Not Found"),
	})
}

type NotFoundVars struct {
	Layout
}

// DevReload streams server-sent events that instruct the browser to refresh
// whenever the dev watcher picks up a change on disk. The SSE connection stays
// open until the client disconnects or the server shuts down.
func (h *handler) DevReload(w http.ResponseWriter, r *http.Request) {
	if h.ReloadNotifier == nil {
		http.NotFound(w, r)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	cancel, ch := h.ReloadNotifier.Subscribe()
	if ch == nil {
		w.WriteHeader(http.StatusGone)
		return
	}
	defer cancel()

	setEventStreamHeaders(w)

	if _, err := fmt.Fprint(w, ": connected\n\n"); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			if _, err := fmt.Fprint(w, "data: reload\n\n"); err != nil {
				slog.DebugContext(r.Context(), "Failed to write reload event", slog.Any("err", err))
				return
			}
			flusher.Flush()
		}
	}
}

func setEventStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}
