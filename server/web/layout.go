package web

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/topi314/club-recruitment/server/chat"
	"github.com/topi314/club-recruitment/server/session"
)

// Layout is embedded into every page's vars and feeds the shared header and chat widget.
type Layout struct {
	Title    string
	Path     string
	Identity session.Identity
	Dev      bool
	Chat     ChatWidget
}

type ChatWidget struct {
	Open     bool
	Messages []chat.Message
}

func (h *handler) layout(r *http.Request, title string) Layout {
	s := session.Get(r.Context())

	var widget ChatWidget
	if t := h.Chat.Peek(s.ID); t != nil {
		widget.Open = t.Open()
		widget.Messages = t.Messages()
	}

	return Layout{
		Title:    title,
		Path:     r.URL.RequestURI(),
		Identity: s.Identity(),
		Dev:      h.Cfg.Dev,
		Chat:     widget,
	}
}

// render executes the template into a buffer first so a failing template never
// leaves a half written page behind.
func (h *handler) render(w http.ResponseWriter, r *http.Request, name string, vars any) {
	h.renderStatus(w, r, http.StatusOK, name, vars)
}

func (h *handler) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, vars any) {
	ctx := r.Context()

	buf := &bytes.Buffer{}
	if err := h.Templates().ExecuteTemplate(buf, name, vars); err != nil {
		slog.ErrorContext(ctx, "Failed to render template", slog.String("template", name), slog.Any("err", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.DebugContext(ctx, "Failed to write response", slog.Any("err", err))
	}
}

// redirectBack sends the browser back to the page a form was submitted from.
func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := r.FormValue("return_to")
	if target == "" || target[0] != '/' || (len(target) > 1 && (target[1] == '/' || target[1] == '\\')) {
		target = fallback
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
