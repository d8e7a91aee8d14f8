package helper

import (
	"net/http"

	"github.com/gin-gonic/gin"

	. "userapp/internal/adapter/http/validation"
	"userapp/internal/core/domain"
	"userapp/internal/core/model/response"
)

func UserPayload(user domain.User) response.UserResponse {
	return response.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// SendDetail writes the error body shape shared by every failure response.
func SendDetail(c *gin.Context, statusCode int, detail any) {
	c.JSON(statusCode, response.DetailResponse{Detail: detail})
}

// SendValidationError reports schema-level failures with per-field messages.
func SendValidationError(c *gin.Context, err error) {
	if validationErrors := FormatValidationErrors(err); len(validationErrors) > 0 {
		SendDetail(c, http.StatusUnprocessableEntity, validationErrors)
		return
	}

	SendDetail(c, http.StatusUnprocessableEntity, "Invalid request parameters")
}

func SendFieldError(c *gin.Context, statusCode int, field, message string) {
	SendDetail(c, statusCode, []response.ValidationError{
		{Field: field, Message: message},
	})
}

func SendBadRequestError(c *gin.Context, message string) {
	SendDetail(c, http.StatusBadRequest, message)
}

func SendNotFoundError(c *gin.Context, message string) {
	SendDetail(c, http.StatusNotFound, message)
}

func SendInternalError(c *gin.Context, message string) {
	SendDetail(c, http.StatusInternalServerError, message)
}
