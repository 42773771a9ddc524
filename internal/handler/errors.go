package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/actuallystonmai/daily-menu-service/internal/domain"
	"github.com/actuallystonmai/daily-menu-service/internal/logging"
)

// writeServiceError maps service errors to status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", "User does not exist")
	case errors.Is(err, domain.ErrRecipeNotFound):
		writeError(w, http.StatusNotFound, "recipe_not_found", "Recipe does not exist")
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "request_timeout",
			"Request timed out, please try again")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
