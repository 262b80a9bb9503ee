package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/topi314/club-recruitment/server/api"
	"github.com/topi314/club-recruitment/server/session"
	"github.com/topi314/club-recruitment/server/views"
)

type RegisterVars struct {
	Layout
	views.Register
}

func (h *handler) Register(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register.gohtml", RegisterVars{
		Layout:   h.layout(r, "Register"),
		Register: views.NewRegister(),
	})
}

func (h *handler) DoRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(ctx, "Failed to parse form", slog.Any("err", err))
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	page := views.NewRegister()
	page.Form = views.RegisterForm{
		FullName: r.FormValue("full_name"),
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Role:     r.FormValue("role"),
	}

	fields, err := h.Validator.Check(page.Form)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to validate registration", slog.Any("err", err))
		page.Error = views.ErrRegistration
	}
	if len(fields) > 0 || err != nil {
		page.Fields = fields
		page.Form.Password = ""
		h.renderStatus(w, r, http.StatusUnprocessableEntity, "register.gohtml", RegisterVars{
			Layout:   h.layout(r, "Register"),
			Register: page,
		})
		return
	}

	rs, err := h.API.Register(ctx, page.Form.Registration())
	if err != nil {
		slog.ErrorContext(ctx, "Failed to register user", slog.String("username", page.Form.Username), slog.Any("err", err))
		page.Error = views.ErrRegistration
		page.Form.Password = ""
		h.render(w, r, "register.gohtml", RegisterVars{
			Layout:   h.layout(r, "Register"),
			Register: page,
		})
		return
	}

	page.Registered = true
	page.UserID = rs.UserID

	if rs.UserID > 0 {
		identity := session.Get(ctx).Identity()
		if page.Form.Role == views.RoleCoordinator {
			identity.CoordinatorID = rs.UserID
		} else {
			identity.StudentID = rs.UserID
		}
		s, err := h.Sessions.SetIdentity(ctx, identity)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to bind registered user to session", slog.Int("user_id", rs.UserID), slog.Any("err", err))
		} else {
			r = r.WithContext(session.SetSession(ctx, s))
		}
	}

	h.Notifier.Notify(ctx, fmt.Sprintf("New %s registered: **%s** (`%s`)", page.Form.Role, page.Form.FullName, page.Form.Username))

	h.render(w, r, "register.gohtml", RegisterVars{
		Layout:   h.layout(r, "Register"),
		Register: page,
	})
}

type ProfileVars struct {
	Layout
	views.ProfilePage
}

func (h *handler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := session.Get(ctx).Identity()

	h.render(w, r, "profile.gohtml", ProfileVars{
		Layout:      h.layout(r, "Profile"),
		ProfilePage: views.LoadProfile(ctx, h.API, identity.StudentID),
	})
}

func (h *handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(ctx, "Failed to parse form", slog.Any("err", err))
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	identity := session.Get(ctx).Identity()
	form := views.ProfileForm{
		Major:           strings.TrimSpace(r.FormValue("major")),
		Interests:       strings.TrimSpace(r.FormValue("interests")),
		Skills:          strings.TrimSpace(r.FormValue("skills")),
		Resume:          strings.TrimSpace(r.FormValue("resume")),
		PersonalDetails: strings.TrimSpace(r.FormValue("personal_details")),
	}

	fields, err := h.Validator.Check(form)
	if err != nil || len(fields) > 0 {
		if err != nil {
			slog.ErrorContext(ctx, "Failed to validate profile", slog.Any("err", err))
		}
		page := views.ProfilePage{
			Form:    form,
			Fields:  fields,
			Message: views.ErrProfileUpdate,
		}
		if saved, err := h.API.GetProfile(ctx, identity.StudentID); err == nil {
			page.Saved = saved
		} else if !api.IsNotFound(err) {
			slog.ErrorContext(ctx, "Failed to fetch profile", slog.Any("err", err))
		}
		h.renderStatus(w, r, http.StatusUnprocessableEntity, "profile.gohtml", ProfileVars{
			Layout:      h.layout(r, "Profile"),
			ProfilePage: page,
		})
		return
	}

	h.render(w, r, "profile.gohtml", ProfileVars{
		Layout:      h.layout(r, "Profile"),
		ProfilePage: views.SaveProfile(ctx, h.API, identity.StudentID, form),
	})
}
