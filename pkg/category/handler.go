package category

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/rest"
)

type CategoryDTO struct {
	Id            int    `json:"category_id"`
	Name          string `json:"category_name"`
	TimeAllocated int64  `json:"time_allocated"`
	BudgetId      int    `json:"budget_id"`
	GroupId       *int   `json:"group_id"`
	TimeUsed      *int64 `json:"time_used,omitempty"`
}

type CategoryRequest struct {
	Name          string   `json:"category_name" validate:"required,max=80"`
	TimeAllocated *float64 `json:"time_allocated" validate:"required,gte=0,lte=3155760000"`
	GroupId       *int     `json:"group_id" validate:"omitempty,gt=0"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List categories of a budget
// @Description Lists grouped and ungrouped categories. With detailed=true each carries time_used.
// @Tags Category
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Param detailed query bool false "Include time used"
// @Success 200 {array} CategoryDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id}/categories [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Listing categories of budget %d", ids[1])
	categories, err := h.service.List(r.Context(), ids[0], ids[1], rest.QueryBool(r, "detailed"))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTOs(categories))
}

// ListByGroup godoc
// @Summary List categories of a group
// @Tags Category
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Param group_id path int true "Group ID"
// @Param detailed query bool false "Include time used"
// @Success 200 {array} CategoryDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id}/groups/{group_id}/categories [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id", "group_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Listing categories of group %d", ids[2])
	categories, err := h.service.ListByGroup(r.Context(), ids[0], ids[1], ids[2], rest.QueryBool(r, "detailed"))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTOs(categories))
}

// Create godoc
// @Summary Create a category
// @Tags Category
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Param category body CategoryRequest true "Category"
// @Success 201 {object} CategoryDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id}/categories [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Creating category in budget %d", ids[1])
	var req CategoryRequest
	if err := rest.DecodeAndValidate(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), ids[0], requestToCategory(req, ids[1], 0))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, CategoryToDTO(created))
}

// Get godoc
// @Summary Get a category
// @Tags Category
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Param category_id path int true "Category ID"
// @Param detailed query bool false "Include time used"
// @Success 200 {object} CategoryDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id}/categories/{category_id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id", "category_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	category, err := h.service.Get(r.Context(), ids[0], ids[1], ids[2], rest.QueryBool(r, "detailed"))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, CategoryToDTO(category))
}

// Update godoc
// @Summary Update a category
// @Description Replaces name, allocated time and group. An absent group_id ungroups the category.
// @Tags Category
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Param category_id path int true "Category ID"
// @Param category body CategoryRequest true "Category"
// @Success 201 {object} CategoryDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id}/categories/{category_id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id", "category_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Updating category %d", ids[2])
	var req CategoryRequest
	if err := rest.DecodeAndValidate(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}
	updated, err := h.service.Update(r.Context(), ids[0], requestToCategory(req, ids[1], ids[2]))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, CategoryToDTO(updated))
}

// Delete godoc
// @Summary Delete a category
// @Description Deletes the category with its transactions
// @Tags Category
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Param category_id path int true "Category ID"
// @Success 200 {object} rest.MessageResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id}/categories/{category_id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id", "category_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Deleting category %d", ids[2])
	if err := h.service.Delete(r.Context(), ids[0], ids[1], ids[2]); err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.MessageResponse{Message: "Category deleted."})
}

func requestToCategory(req CategoryRequest, budgetId, categoryId int) Category {
	return Category{
		Id:            categoryId,
		Name:          req.Name,
		TimeAllocated: rest.Seconds(*req.TimeAllocated),
		BudgetId:      budgetId,
		GroupId:       req.GroupId,
	}
}

func CategoryToDTO(category Category) CategoryDTO {
	dto := CategoryDTO{
		Id:            category.Id,
		Name:          category.Name,
		TimeAllocated: int64(category.TimeAllocated / time.Second),
		BudgetId:      category.BudgetId,
		GroupId:       category.GroupId,
	}
	if category.TimeUsed != nil {
		used := int64(*category.TimeUsed / time.Second)
		dto.TimeUsed = &used
	}
	return dto
}

func toDTOs(categories []Category) []CategoryDTO {
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		dtos = append(dtos, CategoryToDTO(category))
	}
	return dtos
}
