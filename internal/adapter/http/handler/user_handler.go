package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	. "userapp/internal/adapter/http/helper"
	. "userapp/internal/adapter/http/validation"
	"userapp/internal/core/domain"
	"userapp/internal/core/model/request"
	"userapp/internal/core/model/response"
	"userapp/internal/core/port"
	"userapp/internal/core/util"
)

type UserHandler struct {
	svc port.UserService
}

func NewUserHandler(svc port.UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

func parseUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)

	if err != nil {
		SendFieldError(c, http.StatusUnprocessableEntity, "id", "id must be an integer")
		return 0, false
	}

	return id, true
}

// CreateUser registers a user. Pre-flight duplicate checks answer the common
// case; the store's unique constraints stay authoritative for races.
func (h *UserHandler) CreateUser(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.BindParams[request.UserCreateRequest](c)

	if err != nil {
		SendValidationError(c, err)
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	nameTaken, err := h.svc.IsNameTaken(ctx, params.Name)

	if err != nil {
		slog.Error("Error checking user name", "error", err)
		SendInternalError(c, "Error creating user")
		return
	}

	if nameTaken {
		SendBadRequestError(c, fmt.Sprintf("user name '%s' is already in use", params.Name))
		return
	}

	emailTaken, err := h.svc.IsEmailTaken(ctx, params.Email)

	if err != nil {
		slog.Error("Error checking email", "error", err)
		SendInternalError(c, "Error creating user")
		return
	}

	if emailTaken {
		SendBadRequestError(c, fmt.Sprintf("email '%s' is already in use", params.Email))
		return
	}

	user, err := h.svc.CreateUser(ctx, params)

	if err != nil {
		if domain.IsConflict(err) {
			SendBadRequestError(c, "user name or email already in use")
			return
		}

		slog.Error("Error creating user", "error", err)
		SendInternalError(c, "Error creating user")
		return
	}

	c.JSON(http.StatusCreated, UserPayload(user))
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.svc.GetAllUsers(c.Request.Context())

	if err != nil {
		slog.Error("Error listing users", "error", err)
		SendInternalError(c, "Error listing users")
		return
	}

	payload := make([]response.UserResponse, 0, len(users))

	for _, user := range users {
		payload = append(payload, UserPayload(user))
	}

	c.JSON(http.StatusOK, payload)
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := parseUserID(c)

	if !ok {
		return
	}

	user, err := h.svc.GetUserByID(c.Request.Context(), id)

	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			SendNotFoundError(c, fmt.Sprintf("user with id %d not found", id))
			return
		}

		slog.Error("Error getting user", "error", err, "id", id)
		SendInternalError(c, "Error getting user")
		return
	}

	c.JSON(http.StatusOK, UserPayload(user))
}

// UpdateUser applies a partial update. Each terminal outcome of the update
// flow maps to a distinct response: 404 unknown id, 400 password rule or
// duplicate, 200 on success.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseUserID(c)

	if !ok {
		return
	}

	params, err := util.BindParams[request.UserUpdateRequest](c)

	if err != nil {
		SendValidationError(c, err)
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	user, err := h.svc.UpdateUser(c.Request.Context(), id, params)

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			SendNotFoundError(c, fmt.Sprintf("user with id %d not found", id))
		case errors.Is(err, domain.ErrCurrentPasswordRequired),
			errors.Is(err, domain.ErrCurrentPasswordIncorrect):
			SendBadRequestError(c, err.Error())
		case domain.IsConflict(err):
			SendBadRequestError(c, "user name or email already in use")
		default:
			slog.Error("Error updating user", "error", err, "id", id)
			SendInternalError(c, "Error updating user")
		}
		return
	}

	c.JSON(http.StatusOK, UserPayload(user))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseUserID(c)

	if !ok {
		return
	}

	deleted, err := h.svc.DeleteUser(c.Request.Context(), id)

	if err != nil {
		slog.Error("Error deleting user", "error", err, "id", id)
		SendInternalError(c, "Error deleting user")
		return
	}

	if !deleted {
		SendNotFoundError(c, fmt.Sprintf("user with id %d not found", id))
		return
	}

	c.Status(http.StatusNoContent)
}
