package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	. "userapp/internal/adapter/http/helper"
	. "userapp/internal/adapter/http/validation"
	"userapp/internal/core/model/request"
	"userapp/internal/core/model/response"
	"userapp/internal/core/util"
)

// DemoHandler serves the hello and arithmetic demo endpoints.
type DemoHandler struct{}

func NewDemoHandler() *DemoHandler {
	return &DemoHandler{}
}

func (h *DemoHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello, World!"})
}

func (h *DemoHandler) AddNumbers(c *gin.Context) {
	params, err := util.BindParams[request.AddRequest](c)

	if err != nil {
		SendValidationError(c, err)
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	a, b := *params.A, *params.B
	result := a + b

	c.JSON(http.StatusOK, response.AddResponse{
		A:       a,
		B:       b,
		Result:  result,
		Message: fmt.Sprintf("%v + %v = %v", a, b, result),
	})
}
