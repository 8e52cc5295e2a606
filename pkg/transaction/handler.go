package transaction

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/rest"
)

type TransactionDTO struct {
	Id         int       `json:"transaction_id"`
	Name       string    `json:"transaction_name"`
	Period     int64     `json:"period"`
	DateTime   time.Time `json:"date_time"`
	CategoryId int       `json:"category_id"`
}

type TransactionRequest struct {
	Name     string     `json:"transaction_name" validate:"required,max=80"`
	Period   *float64   `json:"period" validate:"required,gte=0,lte=3155760000"`
	DateTime *time.Time `json:"date_time"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List transactions of a category
// @Tags Transaction
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Param category_id path int true "Category ID"
// @Success 200 {array} TransactionDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id}/categories/{category_id}/transactions [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id", "category_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Listing transactions of category %d", ids[2])
	transactions, err := h.service.List(r.Context(), ids[0], ids[1], ids[2])
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]TransactionDTO, 0, len(transactions))
	for _, transaction := range transactions {
		dtos = append(dtos, TransactionToDTO(transaction))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Log time against a category
// @Description date_time defaults to the current time
// @Tags Transaction
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Param category_id path int true "Category ID"
// @Param transaction body TransactionRequest true "Transaction"
// @Success 201 {object} TransactionDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id}/categories/{category_id}/transactions [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id", "category_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Creating transaction in category %d", ids[2])
	var req TransactionRequest
	if err := rest.DecodeAndValidate(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), ids[0], ids[1], requestToTransaction(req, ids[2], 0))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, TransactionToDTO(created))
}

// Get godoc
// @Summary Get a transaction
// @Tags Transaction
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Param category_id path int true "Category ID"
// @Param transaction_id path int true "Transaction ID"
// @Success 200 {object} TransactionDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id}/categories/{category_id}/transactions/{transaction_id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id", "category_id", "transaction_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	transaction, err := h.service.Get(r.Context(), ids[0], ids[1], ids[2], ids[3])
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, TransactionToDTO(transaction))
}

// Update godoc
// @Summary Update a transaction
// @Description Replaces name and period. date_time is kept when absent.
// @Tags Transaction
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Param category_id path int true "Category ID"
// @Param transaction_id path int true "Transaction ID"
// @Param transaction body TransactionRequest true "Transaction"
// @Success 201 {object} TransactionDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id}/categories/{category_id}/transactions/{transaction_id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id", "category_id", "transaction_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Updating transaction %d", ids[3])
	var req TransactionRequest
	if err := rest.DecodeAndValidate(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}
	updated, err := h.service.Update(r.Context(), ids[0], ids[1], requestToTransaction(req, ids[2], ids[3]))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, TransactionToDTO(updated))
}

// Delete godoc
// @Summary Delete a transaction
// @Tags Transaction
// @Produce json
// @Param user_id path int true "User ID"
// @Param budget_id path int true "Budget ID"
// @Param category_id path int true "Category ID"
// @Param transaction_id path int true "Transaction ID"
// @Success 200 {object} rest.MessageResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/budgets/{budget_id}/categories/{category_id}/transactions/{transaction_id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "budget_id", "category_id", "transaction_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Deleting transaction %d", ids[3])
	if err := h.service.Delete(r.Context(), ids[0], ids[1], ids[2], ids[3]); err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.MessageResponse{Message: "Transaction deleted."})
}

func requestToTransaction(req TransactionRequest, categoryId, transactionId int) Transaction {
	transaction := Transaction{
		Id:         transactionId,
		Name:       req.Name,
		Period:     rest.Seconds(*req.Period),
		CategoryId: categoryId,
	}
	if req.DateTime != nil {
		transaction.DateTime = req.DateTime.UTC()
	}
	return transaction
}

func TransactionToDTO(transaction Transaction) TransactionDTO {
	return TransactionDTO{
		Id:         transaction.Id,
		Name:       transaction.Name,
		Period:     int64(transaction.Period / time.Second),
		DateTime:   transaction.DateTime,
		CategoryId: transaction.CategoryId,
	}
}
