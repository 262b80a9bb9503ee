package web

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/topi314/club-recruitment/server/api"
	"github.com/topi314/club-recruitment/server/session"
	"github.com/topi314/club-recruitment/server/views"
)

const (
	FieldApplicationID = "application_id"
	FieldStudentID     = "student_id"
	FieldStudentName   = "student_name"
	FieldStatus        = "status"
	FieldTimestamp     = "timestamp"
	FieldClubID        = "club_id"
	FieldClubName      = "club_name"
)

var allFields = []string{
	FieldApplicationID,
	FieldStudentID,
	FieldStudentName,
	FieldStatus,
	FieldTimestamp,
	FieldClubID,
	FieldClubName,
}

var defaultFields = []string{
	FieldApplicationID,
	FieldStudentID,
	FieldStudentName,
	FieldStatus,
	FieldTimestamp,
}

type Records struct {
	name    string
	records [][]string
}

func (h *handler) ExportApplicationsCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, ok := h.applicationRecords(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", records.name))
	if err := csv.NewWriter(w).WriteAll(records.records); err != nil {
		slog.ErrorContext(ctx, "Failed to write CSV records", slog.Any("err", err))
		return
	}
	slog.InfoContext(ctx, "Export completed successfully", slog.Int("records", len(records.records)-1))
}

func (h *handler) ExportApplicationsXLSX(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, ok := h.applicationRecords(w, r)
	if !ok {
		return
	}

	f, err := recordsToXLSX(records)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build XLSX export", slog.Any("err", err))
		http.Error(w, "Failed to build export", http.StatusInternalServerError)
		return
	}
	defer func() {
		_ = f.Close()
	}()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", records.name))
	if err = f.Write(w); err != nil {
		slog.ErrorContext(ctx, "Failed to write XLSX export", slog.Any("err", err))
		return
	}
	slog.InfoContext(ctx, "Export completed successfully", slog.Int("records", len(records.records)-1))
}

// applicationRecords loads the coordinator's club applications as rows with a
// header row first. It writes the error response itself and reports false on failure.
func (h *handler) applicationRecords(w http.ResponseWriter, r *http.Request) (Records, bool) {
	ctx := r.Context()
	identity := session.Get(ctx).Identity()

	fields := parseFields(r.URL.Query()["fields"])

	club, applications, err := h.fetchClubApplications(ctx, identity.CoordinatorID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to fetch applications for export", slog.Int("coordinator_id", identity.CoordinatorID), slog.Any("err", err))
		http.Error(w, views.ErrOfficerDashboard, http.StatusBadGateway)
		return Records{}, false
	}

	return Records{
		name:    exportName(club),
		records: getRecords(*club, applications, fields),
	}, true
}

func (h *handler) fetchClubApplications(ctx context.Context, coordinatorID int) (*api.Club, []api.ClubApplication, error) {
	club, err := h.API.GetCoordinatorClub(ctx, coordinatorID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch coordinator club: %w", err)
	}

	applications, err := h.API.GetClubApplications(ctx, club.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch club applications: %w", err)
	}
	return club, applications, nil
}

func parseFields(values []string) []string {
	var fields []string
	for _, value := range values {
		for _, field := range strings.Split(value, ",") {
			field = strings.TrimSpace(field)
			if slices.Contains(allFields, field) && !slices.Contains(fields, field) {
				fields = append(fields, field)
			}
		}
	}
	if len(fields) == 0 {
		return defaultFields
	}
	return fields
}

func getRecords(club api.Club, applications []api.ClubApplication, fields []string) [][]string {
	records := [][]string{
		fields,
	}
	for _, application := range applications {
		var record []string
		for _, field := range fields {
			switch field {
			case FieldApplicationID:
				record = append(record, strconv.Itoa(application.ID))
			case FieldStudentID:
				record = append(record, strconv.Itoa(application.StudentID))
			case FieldStudentName:
				record = append(record, application.StudentName)
			case FieldStatus:
				record = append(record, application.Status)
			case FieldTimestamp:
				if application.Timestamp.IsZero() {
					record = append(record, "")
				} else {
					record = append(record, application.Timestamp.Format(time.RFC3339))
				}
			case FieldClubID:
				record = append(record, strconv.Itoa(club.ID))
			case FieldClubName:
				record = append(record, club.Name)
			}
		}
		records = append(records, record)
	}
	return records
}

func recordsToXLSX(records Records) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "Applications"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, record := range records.records {
		for j, value := range record {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err = f.SetCellValue(sheet, cell, value); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}
	return f, nil
}

func exportName(club *api.Club) string {
	return fmt.Sprintf("applications_%s_%s", cleanFilename(club.Name), time.Now().Format("20060102_150405"))
}

func cleanFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\:*?"<>|`, r) {
			return -1
		}
		return r
	}, name)
	return strings.ToLower(name)
}
