package user

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/rest"
)

type UserDTO struct {
	Id        int       `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type UserRequest struct {
	Username string `json:"username" validate:"required,max=80"`
	Email    string `json:"email" validate:"required,max=120"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List users
// @Description Get all users, most recently created first
// @Tags User
// @Produce json
// @Success 200 {array} UserDTO
// @Router /api/users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing users")
	users, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]UserDTO, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, UserToDTO(user))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Create a user
// @Tags User
// @Accept json
// @Produce json
// @Param user body UserRequest true "User"
// @Success 201 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/users [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating user")
	var req UserRequest
	if err := rest.DecodeAndValidate(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), User{Username: req.Username, Email: req.Email})
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, UserToDTO(created))
}

// Get godoc
// @Summary Get a user
// @Tags User
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} UserDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userId, err := rest.PathInt(r, "user_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Getting user %d", userId)
	user, err := h.service.Get(r.Context(), userId)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, UserToDTO(user))
}

// Update godoc
// @Summary Update a user
// @Description Replaces username and email. Responds with 201 like a create.
// @Tags User
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param user body UserRequest true "User"
// @Success 201 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userId, err := rest.PathInt(r, "user_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Updating user %d", userId)
	var req UserRequest
	if err := rest.DecodeAndValidate(r, &req); err != nil {
		rest.WriteError(w, err)
		return
	}
	updated, err := h.service.Update(r.Context(), User{Id: userId, Username: req.Username, Email: req.Email})
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, UserToDTO(updated))
}

// Delete godoc
// @Summary Delete a user
// @Description Deletes the user with all budgets and authorization links
// @Tags User
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} rest.MessageResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userId, err := rest.PathInt(r, "user_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Deleting user %d", userId)
	if err := h.service.Delete(r.Context(), userId); err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.MessageResponse{Message: "User deleted."})
}

func UserToDTO(user User) UserDTO {
	return UserDTO{
		Id:        user.Id,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
