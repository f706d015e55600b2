package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	applog "mirepoix/internal/log"
	"mirepoix/internal/recipes"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeRecipeError translates the recipe engine's error taxonomy into HTTP
// responses. Unknown errors are logged and surfaced as a 500.
func writeRecipeError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *recipes.ValidationError
	if errors.As(err, &validation) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": validation.Fields,
		})
		return
	}

	var versionRange *recipes.VersionRangeError
	if errors.As(err, &versionRange) {
		writeJSONError(w, http.StatusBadRequest, versionRange.Error())
		return
	}

	if errors.Is(err, recipes.ErrNotFound) {
		http.NotFound(w, r)
		return
	}

	var integrity *recipes.IntegrityError
	if errors.As(err, &integrity) {
		applog.Error(r.Context(), "recipe store integrity failure", "error", err)
		writeJSONError(w, http.StatusConflict, integrity.Error())
		return
	}

	applog.Error(r.Context(), "recipe request failed", "error", err)
	writeJSONError(w, http.StatusInternalServerError, "internal error")
}
