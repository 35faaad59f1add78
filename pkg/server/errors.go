package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tableflip.dev/planner/pkg/backup"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/state"
	"tableflip.dev/planner/pkg/store"
)

// statusFor maps store errors to HTTP statuses: malformed input is 400,
// missing records 404, rejected values 422 and superseded loads 409.
func statusFor(err error) int {
	var importErr *state.ImportError
	switch {
	case errors.As(err, &importErr),
		errors.Is(err, backup.ErrNoYear),
		errors.Is(err, model.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, state.ErrNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, state.ErrLoadSuperseded):
		return http.StatusConflict
	case errors.Is(err, state.ErrNoYear),
		errors.Is(err, state.ErrDuplicateID),
		errors.Is(err, state.ErrDuplicateEvent),
		errors.Is(err, state.ErrUnknownLabel),
		errors.Is(err, state.ErrInvalidRange),
		errors.Is(err, state.ErrInvalidDate),
		errors.Is(err, state.ErrDateOutsideYear),
		errors.Is(err, state.ErrInvalidColor),
		errors.Is(err, state.ErrInvalidPriority),
		errors.Is(err, state.ErrInvalidOrder),
		errors.Is(err, state.ErrInvalidCell),
		errors.Is(err, state.ErrEmptyText):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
