package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const cacheHeader = "X-Cache"

// GET /users/{userID}/daily-menu
func (h *Handler) GetDailyMenu(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	// a malformed size falls back to the default rather than failing
	size := 0
	if sizeStr := r.URL.Query().Get("size"); sizeStr != "" {
		if parsed, err := strconv.Atoi(sizeStr); err == nil {
			size = parsed
		}
	}

	result, err := h.service.GetDailyMenu(r.Context(), userID, size)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if result.CacheHit {
		w.Header().Set(cacheHeader, "HIT")
	} else {
		w.Header().Set(cacheHeader, "MISS")
	}
	writeJSON(w, http.StatusOK, result.Menu)
}

func parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid userID parameter")
		return 0, false
	}
	return userID, true
}
