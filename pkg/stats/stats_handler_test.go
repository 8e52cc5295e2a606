package stats

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func setupRouter(t *testing.T) *mux.Router {
	t.Helper()
	handler := NewStatsHandler(setupService(t), NewCsvStatsRenderer())
	r := mux.NewRouter()
	r.HandleFunc("/api/users/{user_id:[0-9]+}/budgets/{budget_id:[0-9]+}/stats", handler.GetStats).Methods("GET")
	return r
}

func TestStatsHandler_GetStats(t *testing.T) {
	t.Run("should respond with json", func(t *testing.T) {
		r := setupRouter(t)
		req := httptest.NewRequest(http.MethodGet, "/api/users/1/budgets/1/stats", nil)
		w := httptest.NewRecorder()

		// when
		r.ServeHTTP(w, req)

		// then
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"budget_id": 1,
			"categories": [
				{"category_id":1,"category_name":"Fiction","group_id":1,"group_name":"Reading","time_allocated":3600,"time_used":1500,"remaining":2100},
				{"category_id":2,"category_name":"Essays","group_id":1,"group_name":"Reading","time_allocated":1800,"time_used":2400,"remaining":-600},
				{"category_id":3,"category_name":"Chores","group_id":null,"time_allocated":7200,"time_used":0,"remaining":7200}
			],
			"total_allocated": 12600,
			"total_used": 3900,
			"total_remaining": 8700
		}`, w.Body.String())
	})

	t.Run("should respond with csv", func(t *testing.T) {
		r := setupRouter(t)
		req := httptest.NewRequest(http.MethodGet, "/api/users/1/budgets/1/stats", nil)
		req.Header.Set("Accept", "text/csv")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "Category,Group,Allocated,Used,Remaining\n"+
			"Fiction,Reading,01:00:00,00:25:00,00:35:00\n"+
			"Essays,Reading,00:30:00,00:40:00,-00:10:00\n"+
			"Chores,,02:00:00,00:00:00,02:00:00\n"+
			"SUM,,03:30:00,01:05:00,02:25:00\n", w.Body.String())
	})

	t.Run("should respond 404 for unknown budget", func(t *testing.T) {
		r := setupRouter(t)
		req := httptest.NewRequest(http.MethodGet, "/api/users/1/budgets/9/stats", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Budget not found."}`, w.Body.String())
	})
}
