package budget

import (
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/rest"
)

type BudgetDTO struct {
	Id     int    `json:"budget_id"`
	Name   string `json:"budget_name"`
	UserId int    `json:"user_id"`
}

type BudgetRequest struct {
	Name string `json:"budget_name" validate:"required,max=80"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List budgets of a user
// @Tags Budget
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} BudgetDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userId, err := rest.PathInt(r, "user_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Listing budgets of user %d", userId)
	budgets, err := h.service.List(r.Context(), userId)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]BudgetDTO, 0, len(budgets))
	for _, budget := range budgets {
		dtos = append(dtos, BudgetToDTO(budget))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Create a budget
// @Tags Budget
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget body BudgetRequest true "Budget"
// @Success 201 {object} BudgetDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userId, err := rest.PathInt(r, "user_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Creating budget for user %d", userId)
	var req BudgetRequest
	if err := rest.DecodeAndValidate(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), Budget{Name: req.Name, UserId: userId})
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, BudgetToDTO(created))
}

// Get godoc
// @Summary Get a budget
// @Tags Budget
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Success 200 {object} BudgetDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	budget, err := h.service.Get(r.Context(), ids[0], ids[1])
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, BudgetToDTO(budget))
}

// Update godoc
// @Summary Rename a budget
// @Tags Budget
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Param budget body BudgetRequest true "Budget"
// @Success 201 {object} BudgetDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Updating budget %d", ids[1])
	var req BudgetRequest
	if err := rest.DecodeAndValidate(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}
	updated, err := h.service.Update(r.Context(), Budget{Id: ids[1], Name: req.Name, UserId: ids[0]})
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, BudgetToDTO(updated))
}

// Delete godoc
// @Summary Delete a budget
// @Description Deletes the budget with its groups, categories and transactions
// @Tags Budget
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Success 200 {object} rest.MessageResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Deleting budget %d", ids[1])
	if err := h.service.Delete(r.Context(), ids[0], ids[1]); err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.MessageResponse{Message: "Budget deleted."})
}

func BudgetToDTO(budget Budget) BudgetDTO {
	return BudgetDTO{
		Id:     budget.Id,
		Name:   budget.Name,
		UserId: budget.UserId,
	}
}
