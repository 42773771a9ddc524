package handler

import (
	"context"
	"net/http"

	"github.com/actuallystonmai/daily-menu-service/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// MenuService is the part of the service layer the HTTP surface calls.
type MenuService interface {
	GetDailyMenu(ctx context.Context, userID int64, size int) (*domain.DailyMenuResult, error)
	GetBatchDailyMenus(ctx context.Context, page, limit int) (*domain.BatchResponse, error)
	RecordCooked(ctx context.Context, userID, recipeID int64) error
	AddFavorite(ctx context.Context, userID, recipeID int64) error
}

type Handler struct {
	service  MenuService
	validate *validator.Validate
}

func NewHandler(svc MenuService) *Handler {
	return &Handler{service: svc, validate: validator.New()}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}
