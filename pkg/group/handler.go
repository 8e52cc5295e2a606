package group

import (
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/rest"
)

type GroupDTO struct {
	Id       int    `json:"group_id"`
	Name     string `json:"group_name"`
	BudgetId int    `json:"budget_id"`
}

type GroupRequest struct {
	Name string `json:"group_name" validate:"required,max=80"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List groups of a budget
// @Tags Group
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Success 200 {array} GroupDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id}/groups [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Listing groups of budget %d", ids[1])
	groups, err := h.service.List(r.Context(), ids[0], ids[1])
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]GroupDTO, 0, len(groups))
	for _, group := range groups {
		dtos = append(dtos, GroupToDTO(group))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Create a group
// @Tags Group
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Param group body GroupRequest true "Group"
// @Success 201 {object} GroupDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id}/groups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Creating group in budget %d", ids[1])
	var req GroupRequest
	if err := rest.DecodeAndValidate(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), ids[0], Group{Name: req.Name, BudgetId: ids[1]})
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, GroupToDTO(created))
}

// Get godoc
// @Summary Get a group
// @Tags Group
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Param group_id path int true "Group ID"
// @Success 200 {object} GroupDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id}/groups/{group_id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id", "group_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	group, err := h.service.Get(r.Context(), ids[0], ids[1], ids[2])
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, GroupToDTO(group))
}

// Update godoc
// @Summary Rename a group
// @Tags Group
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Param group_id path int true "Group ID"
// @Param group body GroupRequest true "Group"
// @Success 201 {object} GroupDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id}/groups/{group_id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id", "group_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Updating group %d", ids[2])
	var req GroupRequest
	if err := rest.DecodeAndValidate(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}
	updated, err := h.service.Update(r.Context(), ids[0], Group{Id: ids[2], Name: req.Name, BudgetId: ids[1]})
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, GroupToDTO(updated))
}

// Delete godoc
// @Summary Delete a group
// @Description Deletes the group. Its categories are kept without a group.
// @Tags Group
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Param group_id path int true "Group ID"
// @Success 200 {object} rest.MessageResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id}/groups/{group_id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id", "group_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Deleting group %d", ids[2])
	if err := h.service.Delete(r.Context(), ids[0], ids[1], ids[2]); err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.MessageResponse{Message: "Group deleted."})
}

func GroupToDTO(group Group) GroupDTO {
	return GroupDTO{
		Id:       group.Id,
		Name:     group.Name,
		BudgetId: group.BudgetId,
	}
}
