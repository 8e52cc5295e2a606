package authorization

import (
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/rest"
)

type LinkDTO struct {
	AuthorizerId int `json:"authorizer_id"`
	AuthorizedId int `json:"authorized_id"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List users authorized by a user
// @Tags Authorization
// @Produce json
// @Param user_id path int true "Authorizer user ID"
// @Success 200 {array} LinkDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/authorizations [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userId, err := rest.PathInt(r, "user_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Listing authorizations of user %d", userId)
	links, err := h.service.List(r.Context(), userId)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]LinkDTO, 0, len(links))
	for _, link := range links {
		dtos = append(dtos, LinkDTO(link))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Authorize godoc
// @Summary Authorize another user
// @Description Idempotent. Responds with 201 whether or not the link existed.
// @Tags Authorization
// @Produce json
// @Param user_id path int true "Authorizer user ID"
// @Param authorized_id path int true "Authorized user ID"
// @Success 201 {object} LinkDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/authorizations/{authorized_id} [put]
func (h *Handler) Authorize(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "authorized_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("User %d authorizes user %d", ids[0], ids[1])
	link, err := h.service.Authorize(r.Context(), Link{AuthorizerId: ids[0], AuthorizedId: ids[1]})
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, LinkDTO(link))
}

// Revoke godoc
// @Summary Revoke an authorization
// @Tags Authorization
// @Produce json
// @Param user_id path int true "Authorizer user ID"
// @Param authorized_id path int true "Authorized user ID"
// @Success 200 {object} rest.MessageResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/users/{user_id}/authorizations/{authorized_id} [delete]
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	ids, err := rest.PathInts(r, "user_id", "authorized_id")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("User %d revokes user %d", ids[0], ids[1])
	if err := h.service.Revoke(r.Context(), Link{AuthorizerId: ids[0], AuthorizedId: ids[1]}); err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.MessageResponse{Message: "Authorization deleted."})
}
