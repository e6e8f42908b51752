package httperr

import (
	"errors"
	"net/http"

	"medslot/internal/infra"
	"medslot/internal/usecase/commands"
	"medslot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort maps a usecase or repository error to its HTTP shape. The
// capacity rejection keeps its numbers in the detail payload.
func Abort(c *gin.Context, err error) {
	var capErr *commands.CapacityExceededError
	if errors.As(err, &capErr) {
		AbortWithError(c, http.StatusConflict, err, "Daily capacity exceeded", gin.H{
			"limit":    capErr.Limit,
			"occupied": capErr.Occupied,
		})
		return
	}

	switch {
	case errors.Is(err, commands.ErrValidation):
		AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", nil)
	case errors.Is(err, commands.ErrTestNotOffered):
		AbortWithError(c, http.StatusUnprocessableEntity, err, "Test is not offered at this center", nil)
	case errors.Is(err, commands.ErrForbidden), errors.Is(err, queries.ErrQueryForbidden):
		AbortWithError(c, http.StatusForbidden, err, "Operation not allowed", nil)
	case errors.Is(err, commands.ErrConflict):
		AbortWithError(c, http.StatusConflict, err, "Operation conflicts with current state", nil)
	case errors.Is(err, commands.ErrInvalidCredentials):
		AbortWithError(c, http.StatusUnauthorized, err, "Invalid credentials", nil)
	case infra.IsKind(err, infra.KindNotFound):
		AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
	case infra.IsKind(err, infra.KindDuplicateKey):
		AbortWithError(c, http.StatusConflict, err, "Duplicate resource", nil)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		AbortWithError(c, http.StatusUnprocessableEntity, err, "Referenced resource does not exist", nil)
	default:
		AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
