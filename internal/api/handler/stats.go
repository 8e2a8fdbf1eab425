package handler

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/scootstats/scootstats/internal/api/models"
	"github.com/scootstats/scootstats/internal/api/response"
	"github.com/scootstats/scootstats/internal/dashboard"
	"github.com/scootstats/scootstats/internal/stats"
)

// StatsHandler serves the derived aggregate views.
type StatsHandler struct {
	service *dashboard.Service
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(service *dashboard.Service) *StatsHandler {
	return &StatsHandler{service: service}
}

// Totals handles GET /v1/stats: the top-level stat strip.
func (h *StatsHandler) Totals(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.service.Aggregates().Totals)
}

// Monthly handles GET /v1/stats/monthly.
func (h *StatsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.service.Aggregates().Monthly)
}

// Calendar handles GET /v1/stats/calendar?year=YYYY.
func (h *StatsHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	var year int
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, r, "year must be a number")
			return
		}
		year = parsed
	}

	calendar := h.service.Aggregates().Calendar
	days := make([]models.CalendarDay, 0, len(calendar))
	for date, distance := range calendar {
		if year != 0 && !dateInYear(date, year) {
			continue
		}
		days = append(days, models.CalendarDay{
			Date:     date,
			Distance: distance,
			Level:    stats.ActivityLevel(distance),
		})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})

	response.JSON(w, r, http.StatusOK, days)
}

// Summaries handles GET /v1/stats/summaries?period=daily|weekly|monthly,
// attaching period-over-period trends to each entry.
func (h *StatsHandler) Summaries(w http.ResponseWriter, r *http.Request) {
	period, ok := parsePeriod(r.URL.Query().Get("period"))
	if !ok {
		response.BadRequest(w, r, "period must be daily, weekly, or monthly")
		return
	}

	summaries := h.service.Summaries(period)
	items := make([]models.SummaryItem, 0, len(summaries))
	for i, s := range summaries {
		item := models.SummaryItem{Summary: s}
		// Summaries are newest first; the next entry is the previous
		// period.
		if i+1 < len(summaries) {
			prev := summaries[i+1]
			item.DistanceTrend = stats.Delta(s.TotalDistance, prev.TotalDistance)
			item.EfficiencyTrend = stats.Delta(s.AvgEfficiency, prev.AvgEfficiency)
		}
		items = append(items, item)
	}

	response.JSON(w, r, http.StatusOK, items)
}

// Modes handles GET /v1/stats/modes: lifetime totals plus the recent
// per-ride usage window.
func (h *StatsHandler) Modes(w http.ResponseWriter, r *http.Request) {
	agg := h.service.Aggregates()
	response.JSON(w, r, http.StatusOK, map[string]interface{}{
		"totals": agg.ModeTotals,
		"recent": agg.RecentModes,
	})
}

// Behavior handles GET /v1/stats/behavior.
func (h *StatsHandler) Behavior(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.service.Aggregates().Totals.Behavior)
}

// Years handles GET /v1/stats/years.
func (h *StatsHandler) Years(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.service.Aggregates().Years)
}

func parsePeriod(raw string) (stats.Period, bool) {
	switch raw {
	case "", string(stats.PeriodDaily):
		return stats.PeriodDaily, true
	case string(stats.PeriodWeekly):
		return stats.PeriodWeekly, true
	case string(stats.PeriodMonthly):
		return stats.PeriodMonthly, true
	default:
		return "", false
	}
}

func dateInYear(date string, year int) bool {
	if len(date) < 4 {
		return false
	}
	y, err := strconv.Atoi(date[:4])
	return err == nil && y == year
}
