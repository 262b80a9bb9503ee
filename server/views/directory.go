package views

import (
	"context"
	"log/slog"
	"strings"

	"github.com/topi314/club-recruitment/server/api"
)

const (
	ErrFetchClubs    = "Failed to fetch clubs. Is the backend running?"
	ErrApplyFallback = "An error occurred during application."
	TagAll           = "All"
)

var Categories = []string{TagAll, "Technical", "Non-Tech", "Arts", "Leadership"}

type ClubLister interface {
	GetClubs(ctx context.Context) ([]api.Club, error)
}

type Directory struct {
	Status
	Search     string
	Tag        string
	Categories []string
	Clubs      []api.Club
	Visible    []api.Club
	Modal      *ApplyModal
}

type ApplyModal struct {
	Club    api.Club
	Message string
	Success bool
}

// FilterClubs keeps clubs whose name or description contains search and which
// carry tag. Both comparisons ignore case. An empty tag or "All" matches every club.
func FilterClubs(clubs []api.Club, search string, tag string) []api.Club {
	search = strings.ToLower(search)
	visible := make([]api.Club, 0, len(clubs))
	for _, club := range clubs {
		if !matchesSearch(club, search) || !matchesTag(club, tag) {
			continue
		}
		visible = append(visible, club)
	}
	return visible
}

func matchesSearch(club api.Club, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(club.Name), search) ||
		strings.Contains(strings.ToLower(club.Description), search)
}

func matchesTag(club api.Club, tag string) bool {
	if tag == "" || tag == TagAll {
		return true
	}
	for _, t := range club.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// LoadDirectory fetches all clubs once and derives the visible set. applyID
// binds the application modal to the club with that id, if it exists.
func LoadDirectory(ctx context.Context, clubs ClubLister, search string, tag string, applyID int) Directory {
	if tag == "" {
		tag = TagAll
	}
	d := Directory{
		Search:     search,
		Tag:        tag,
		Categories: Categories,
	}

	all, err := clubs.GetClubs(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to fetch clubs", slog.Any("err", err))
		d.Fail(ErrFetchClubs)
		return d
	}

	d.Clubs = all
	d.Visible = FilterClubs(all, search, tag)
	d.Ready()

	if applyID > 0 {
		if club, ok := FindClub(all, applyID); ok {
			d.Modal = &ApplyModal{Club: club}
		}
	}
	return d
}

func FindClub(clubs []api.Club, id int) (api.Club, bool) {
	for _, club := range clubs {
		if club.ID == id {
			return club, true
		}
	}
	return api.Club{}, false
}
