package views

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/topi314/club-recruitment/server/api"
)

const (
	ErrRegistration   = "Registration failed. Please try again."
	ErrProfileUpdate  = "Failed to update profile. Please try again."
	MsgProfileUpdated = "Profile updated successfully! 🎉"

	RoleStudent     = "student"
	RoleCoordinator = "coordinator"
)

var Roles = []string{RoleStudent, RoleCoordinator}

// Validator checks submitted forms. Field errors are keyed by the form field name.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

type FieldErrors map[string]string

func (v *Validator) Check(form any) (FieldErrors, error) {
	err := v.validate.Struct(form)
	if err == nil {
		return nil, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, fmt.Errorf("failed to validate form: %w", err)
	}

	fields := make(FieldErrors, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields[fieldErr.Field()] = fieldMessage(fieldErr)
	}
	return fields, nil
}

func fieldMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Please enter a valid email address."
	case "oneof":
		return "Please choose one of: " + strings.ReplaceAll(err.Param(), " ", ", ") + "."
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", err.Param())
	case "url":
		return "Please enter a valid URL."
	default:
		return "Invalid value."
	}
}

type RegisterForm struct {
	FullName string `form:"full_name" validate:"required"`
	Username string `form:"username" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
	Role     string `form:"role" validate:"required,oneof=student coordinator"`
}

func (f RegisterForm) Registration() api.Registration {
	return api.Registration{
		Username: f.Username,
		Email:    f.Email,
		Password: f.Password,
		FullName: f.FullName,
		Role:     f.Role,
	}
}

type Register struct {
	Form   RegisterForm
	Roles  []string
	Fields FieldErrors
	Error  string
	// Registered switches the page into confirmation mode.
	Registered bool
	UserID     int
}

func NewRegister() Register {
	return Register{
		Form:  RegisterForm{Role: RoleStudent},
		Roles: Roles,
	}
}

type ProfileForm struct {
	Major           string `form:"major" validate:"required"`
	Interests       string `form:"interests" validate:"required"`
	Skills          string `form:"skills" validate:"required"`
	Resume          string `form:"resume" validate:"omitempty,url"`
	PersonalDetails string `form:"personal_details"`
}

func ProfileFormFrom(p api.Profile) ProfileForm {
	return ProfileForm{
		Major:           p.Major,
		Interests:       p.Interests,
		Skills:          p.Skills,
		Resume:          p.Resume,
		PersonalDetails: p.PersonalDetails,
	}
}

func (f ProfileForm) Update() api.ProfileUpdate {
	return api.ProfileUpdate{
		Major:           f.Major,
		Interests:       f.Interests,
		Skills:          f.Skills,
		Resume:          f.Resume,
		PersonalDetails: f.PersonalDetails,
	}
}

type ProfileSource interface {
	GetProfile(ctx context.Context, userID int) (*api.Profile, error)
	UpdateProfile(ctx context.Context, userID int, update api.ProfileUpdate) (*api.MessageResponse, error)
}

type ProfilePage struct {
	Form    ProfileForm
	Fields  FieldErrors
	Saved   *api.Profile
	Message string
	Success bool
}

// LoadProfile fills the form from the stored profile. A failed fetch leaves the form empty.
func LoadProfile(ctx context.Context, profiles ProfileSource, userID int) ProfilePage {
	var page ProfilePage
	profile, err := profiles.GetProfile(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to fetch profile", slog.Int("user_id", userID), slog.Any("err", err))
		return page
	}
	page.Form = ProfileFormFrom(*profile)
	page.Saved = profile
	return page
}

// SaveProfile submits form and, on success, shows the profile as the backend
// returns it afterwards rather than the submitted values.
func SaveProfile(ctx context.Context, profiles ProfileSource, userID int, form ProfileForm) ProfilePage {
	page := ProfilePage{Form: form}

	if _, err := profiles.UpdateProfile(ctx, userID, form.Update()); err != nil {
		slog.ErrorContext(ctx, "Failed to update profile", slog.Int("user_id", userID), slog.Any("err", err))
		page.Message = ErrProfileUpdate
		return page
	}

	page.Message = MsgProfileUpdated
	page.Success = true

	profile, err := profiles.GetProfile(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to refetch profile", slog.Int("user_id", userID), slog.Any("err", err))
		return page
	}
	page.Saved = profile
	page.Form = ProfileFormFrom(*profile)
	return page
}
