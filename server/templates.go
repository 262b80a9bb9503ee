package server

import (
	"html/template"
	"strings"
	"time"

	"github.com/topi314/club-recruitment/server/api"
	"github.com/topi314/club-recruitment/server/views"
)

var templateFuncs = template.FuncMap{
	"percent":     views.ScorePercent,
	"statusClass": views.StatusClass,
	"join":        strings.Join,
	"lower":       strings.ToLower,
	"date":        formatDate,
	"dateTime":    formatDateTime,
	"stars":       stars,
}

func formatDate(t api.Time) string {
	if t.IsZero() {
		return "TBA"
	}
	return t.Format("Jan 2, 2006")
}

func formatDateTime(t api.Time) string {
	if t.IsZero() {
		return "TBA"
	}
	return t.Format(time.DateTime)
}

// stars renders a 0-5 rating. Out of range ratings are clamped.
func stars(rating int) string {
	rating = max(0, min(rating, 5))
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}
