package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/canulcua123-source/vista-boss/internal/app/service"
	"github.com/canulcua123-source/vista-boss/internal/common"
	"github.com/canulcua123-source/vista-boss/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(us *service.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listUsers)             // GET    /api/v1/users
	r.Post("/", h.createUser)           // POST   /api/v1/users
	r.Delete("/{userID}", h.deleteUser) // DELETE /api/v1/users/3
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type UsersResponse struct {
		Users []model.User `json:"users"`
		Total int          `json:"total"`
	}
	common.RespondWithJSON(w, http.StatusOK, UsersResponse{Users: users, Total: len(users)})
}

func (h *UserHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req model.NewUserInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.userService.CreateUser(r.Context(), req)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			common.RespondWithFieldErrors(w, vErr.Error(), vErr.Fields)
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
