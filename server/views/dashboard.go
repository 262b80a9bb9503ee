package views

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/topi314/club-recruitment/server/api"
)

const (
	ErrStudentDashboard = "Failed to load dashboard data. Is the backend running?"
	ErrOfficerDashboard = "Failed to fetch dashboard data. Is the backend running?"
	ErrQRCode           = "Failed to load QR code."
)

type StudentSource interface {
	GetProfile(ctx context.Context, userID int) (*api.Profile, error)
	GetRecommendations(ctx context.Context, userID int) ([]api.Recommendation, error)
	GetStudentApplications(ctx context.Context, studentID int) ([]api.StudentApplication, error)
}

type StudentDashboard struct {
	Status
	Profile         *api.Profile
	Recommendations []api.Recommendation
	Applications    []api.StudentApplication
}

// LoadStudentDashboard fetches everything concurrently. If any fetch fails the
// dashboard only carries the error.
func LoadStudentDashboard(ctx context.Context, src StudentSource, studentID int) StudentDashboard {
	var (
		d               StudentDashboard
		profile         *api.Profile
		recommendations []api.Recommendation
		applications    []api.StudentApplication
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		profile, err = src.GetProfile(egCtx, studentID)
		return err
	})
	eg.Go(func() error {
		var err error
		recommendations, err = src.GetRecommendations(egCtx, studentID)
		return err
	})
	eg.Go(func() error {
		var err error
		applications, err = src.GetStudentApplications(egCtx, studentID)
		return err
	})

	if err := eg.Wait(); err != nil {
		slog.ErrorContext(ctx, "Failed to load student dashboard", slog.Int("student_id", studentID), slog.Any("err", err))
		d.Fail(ErrStudentDashboard)
		return d
	}

	d.Profile = profile
	d.Recommendations = recommendations
	d.Applications = applications
	d.Ready()
	return d
}

type OfficerSource interface {
	GetCoordinatorClub(ctx context.Context, coordinatorID int) (*api.Club, error)
	GetClubEvents(ctx context.Context, clubID int) ([]api.Event, error)
	GetClubApplications(ctx context.Context, clubID int) ([]api.ClubApplication, error)
	GetClubFeedback(ctx context.Context, clubID int) ([]api.Feedback, error)
}

type OfficerDashboard struct {
	Status
	Club         *api.Club
	Events       []api.Event
	Applications []api.ClubApplication
	Feedback     []api.Feedback
	QR           *QROverlay
}

// LoadOfficerDashboard resolves the coordinator's club first, then loads its
// events, applications and feedback concurrently.
func LoadOfficerDashboard(ctx context.Context, src OfficerSource, coordinatorID int) OfficerDashboard {
	var d OfficerDashboard

	club, err := src.GetCoordinatorClub(ctx, coordinatorID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to fetch coordinator club", slog.Int("coordinator_id", coordinatorID), slog.Any("err", err))
		d.Fail(ErrOfficerDashboard)
		return d
	}

	var (
		events       []api.Event
		applications []api.ClubApplication
		feedback     []api.Feedback
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		events, err = src.GetClubEvents(egCtx, club.ID)
		return err
	})
	eg.Go(func() error {
		var err error
		applications, err = src.GetClubApplications(egCtx, club.ID)
		return err
	})
	eg.Go(func() error {
		var err error
		feedback, err = src.GetClubFeedback(egCtx, club.ID)
		return err
	})

	if err = eg.Wait(); err != nil {
		slog.ErrorContext(ctx, "Failed to load officer dashboard", slog.Int("club_id", club.ID), slog.Any("err", err))
		d.Fail(ErrOfficerDashboard)
		return d
	}

	d.Club = club
	d.Events = events
	d.Applications = applications
	d.Feedback = feedback
	d.Ready()
	return d
}

type QRSource interface {
	GenerateQR(ctx context.Context, eventID int) (*api.QRCode, error)
}

type QROverlay struct {
	EventID int
	Image   template.URL
	Error   string
}

// LoadQR fetches the check-in QR of an event. It never fails the caller; a
// failed fetch or an undecodable payload yields the overlay error instead.
func LoadQR(ctx context.Context, src QRSource, eventID int) *QROverlay {
	overlay := &QROverlay{EventID: eventID}

	png, err := FetchQR(ctx, src, eventID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load QR code", slog.Int("event_id", eventID), slog.Any("err", err))
		overlay.Error = ErrQRCode
		return overlay
	}

	overlay.Image = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
	return overlay
}

// FetchQR returns the decoded PNG bytes of an event's QR code.
func FetchQR(ctx context.Context, src QRSource, eventID int) ([]byte, error) {
	qr, err := src.GenerateQR(ctx, eventID)
	if err != nil {
		return nil, err
	}

	png, err := base64.StdEncoding.DecodeString(qr.ImageBase64)
	if err != nil {
		return nil, fmt.Errorf("invalid qr code payload: %w", err)
	}
	return png, nil
}

// ScorePercent renders a 0..1 recommendation score as a rounded percentage.
func ScorePercent(score float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(score*100)))
}

// StatusClass derives the css class of an application status. Unknown statuses pass through.
func StatusClass(status string) string {
	return "status-" + strings.ToLower(status)
}
