package stats

import (
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/rest"
)

type CategoryUsageDTO struct {
	CategoryId    int    `json:"category_id"`
	CategoryName  string `json:"category_name"`
	GroupId       *int   `json:"group_id"`
	GroupName     string `json:"group_name,omitempty"`
	TimeAllocated int64  `json:"time_allocated"`
	TimeUsed      int64  `json:"time_used"`
	Remaining     int64  `json:"remaining"`
}

type UsageSummaryDTO struct {
	BudgetId       int                `json:"budget_id"`
	Categories     []CategoryUsageDTO `json:"categories"`
	TotalAllocated int64              `json:"total_allocated"`
	TotalUsed      int64              `json:"total_used"`
	TotalRemaining int64              `json:"total_remaining"`
}

type StatsHandler struct {
	statsService     StatsService
	csvStatsRenderer StatsRenderer
}

func NewStatsHandler(statsService StatsService, csvStatsRenderer StatsRenderer) *StatsHandler {
	return &StatsHandler{statsService, csvStatsRenderer}
}

// GetStats godoc
// @Summary Usage report of a budget
// @Description Allocated, used and remaining seconds per category. Responds with CSV when Accept is text/csv.
// @Tags Stats
// @Produce json
// @Produce text/csv
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Success 200 {object} UsageSummaryDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id}/stats [get]
func (handler *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Reporting usage of budget %d", ids[1])
	summary, err := handler.statsService.BudgetUsage(r.Context(), ids[0], ids[1])
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	if strings.HasPrefix(r.Header.Get("Accept"), "text/csv") {
		csv, err := handler.csvStatsRenderer.RenderStats(summary)
		if err != nil {
			rest.WriteError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv response: %v", err)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(summary))
}

func toDTO(summary UsageSummary) UsageSummaryDTO {
	categories := make([]CategoryUsageDTO, 0, len(summary.Categories))
	for _, c := range summary.Categories {
		categories = append(categories, CategoryUsageDTO{
			CategoryId:    c.CategoryId,
			CategoryName:  c.CategoryName,
			GroupId:       c.GroupId,
			GroupName:     c.GroupName,
			TimeAllocated: seconds(c.TimeAllocated),
			TimeUsed:      seconds(c.TimeUsed),
			Remaining:     seconds(c.Remaining),
		})
	}
	return UsageSummaryDTO{
		BudgetId:       summary.BudgetId,
		Categories:     categories,
		TotalAllocated: seconds(summary.TotalAllocated),
		TotalUsed:      seconds(summary.TotalUsed),
		TotalRemaining: seconds(summary.TotalRemaining),
	}
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
