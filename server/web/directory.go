package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"github.com/topi314/club-recruitment/internal/xio"
	"github.com/topi314/club-recruitment/internal/xquery"
	"github.com/topi314/club-recruitment/server"
	"github.com/topi314/club-recruitment/server/api"
	"github.com/topi314/club-recruitment/server/session"
	"github.com/topi314/club-recruitment/server/views"
)

type DirectoryVars struct {
	Layout
	views.Directory
}

func (h *handler) Directory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	applyID, _ := xquery.ParseID(query.Get("apply"))

	h.render(w, r, "directory.gohtml", DirectoryVars{
		Layout: h.layout(r, "Club Directory"),
		Directory: views.LoadDirectory(r.Context(),
			h.API,
			query.Get("search"),
			xquery.ParseString(query, "tag", views.TagAll),
			applyID,
		),
	})
}

// Apply submits an application for the session's student and renders the
// directory with the modal still open and the outcome in it.
func (h *handler) Apply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clubID, ok := xquery.ParseID(r.PathValue("club_id"))
	if !ok {
		h.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(ctx, "Failed to parse form", slog.Any("err", err))
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	identity := session.Get(ctx).Identity()

	var modal views.ApplyModal
	rs, err := h.API.Apply(ctx, identity.StudentID, clubID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to apply to club", slog.Int("club_id", clubID), slog.Int("student_id", identity.StudentID), slog.Any("err", err))
		modal.Message = api.Message(err, views.ErrApplyFallback)
	} else {
		modal.Message = rs.Message
		modal.Success = true
	}

	d := views.LoadDirectory(ctx, h.API,
		r.Form.Get("search"),
		xquery.ParseString(r.Form, "tag", views.TagAll),
		0,
	)
	modal.Club = api.Club{ID: clubID}
	if club, ok := views.FindClub(d.Clubs, clubID); ok {
		modal.Club = club
	}
	d.Modal = &modal

	if modal.Success {
		h.Notifier.Notify(ctx, fmt.Sprintf("Student `%d` applied to **%s** at %s", identity.StudentID, clubName(modal.Club), server.Timestamp(time.Now())))
	}

	h.render(w, r, "directory.gohtml", DirectoryVars{
		Layout:    h.layout(r, "Club Directory"),
		Directory: d,
	})
}

func clubName(club api.Club) string {
	if club.Name != "" {
		return club.Name
	}
	return "club " + strconv.Itoa(club.ID)
}

// ClubQRCode renders a QR code linking to the club's application modal.
func (h *handler) ClubQRCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clubID, ok := xquery.ParseID(r.PathValue("club_id"))
	if !ok {
		h.NotFound(w, r)
		return
	}

	qr, err := qrcode.New(fmt.Sprintf("%s/directory?apply=%d", h.Cfg.Server.PublicURL, clubID))
	if err != nil {
		slog.ErrorContext(ctx, "Failed to create qrcode", slog.Any("err", err))
		http.Error(w, "Failed to create qrcode", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	qrW := standard.NewWithWriter(xio.NewResponseWriteCloser(w),
		standard.WithBgTransparent(),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	)

	defer func() {
		_ = qrW.Close()
	}()
	if err = qr.Save(qrW); err != nil {
		slog.ErrorContext(ctx, "Failed to save qrcode", slog.Any("err", err))
	}
}
