// internal/app/features/rosters/rostercsv.go
package rosters

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/opshub/internal/app/system/respond"
	"github.com/dalemusser/opshub/internal/app/system/timeouts"
	"github.com/dalemusser/opshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// HandleExportCSV handles GET /rosters/calendar/export?year=&month=&site=.
// It streams the month's roster as CSV, one row per shift, with site
// and user references resolved to display names.
func (h *Handler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	year, month, site, ok := calendarParams(w, r)
	if !ok {
		return
	}

	rosters, err := h.Rosters.Month(ctx, site, year, month)
	if err != nil {
		h.Log.Error("roster export failed", zap.Error(err))
		respond.Internal(w)
		return
	}

	filename := fmt.Sprintf("rosters_%04d-%02d.csv", year, int(month))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))

	// UTF-8 BOM for Excel
	_, _ = w.Write([]byte{0xEF, 0xBB, 0xBF})

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	defer cw.Flush()

	_ = cw.Write([]string{"date", "shift", "site", "assigned_users", "notes"})

	// site name cache
	siteName := make(map[models.SiteRef]string)
	resolveSiteName := func(ref models.SiteRef) string {
		if name, ok := siteName[ref]; ok {
			return name
		}
		name := string(ref)
		if id, ok := ref.ObjectID(); ok {
			var s models.Site
			if err := h.DB.Collection("sites").FindOne(ctx, bson.M{"_id": id}).Decode(&s); err == nil {
				name = s.Name
			}
		}
		siteName[ref] = name
		return name
	}

	// user name cache
	userName := make(map[models.UserRef]string)
	resolveUserName := func(ref models.UserRef) string {
		if name, ok := userName[ref]; ok {
			return name
		}
		name := string(ref)
		if id, ok := ref.ObjectID(); ok {
			var u models.User
			if err := h.DB.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&u); err == nil {
				name = u.Name
			}
		}
		userName[ref] = name
		return name
	}

	for _, roster := range rosters {
		names := make([]string, 0, len(roster.AssignedUsers))
		for _, ref := range roster.AssignedUsers {
			names = append(names, resolveUserName(ref))
		}

		_ = cw.Write([]string{
			roster.Date.Format("2006-01-02"),
			roster.Shift,
			resolveSiteName(roster.SiteID),
			strings.Join(names, "; "),
			roster.Notes,
		})
	}
}
