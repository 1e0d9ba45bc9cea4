package handlers

import (
	"net/http"

	"blogcore/internal/content"
	"blogcore/internal/utils"
)

// writeContentError maps service errors onto the HTTP boundary.
// Validation failures keep their field detail; everything unexpected
// is an opaque 500 (upstream failures are not retried here).
func writeContentError(w http.ResponseWriter, err error) {
	if ve, ok := content.IsValidation(err); ok {
		utils.JSONFieldErrors(w, http.StatusBadRequest, ve.Fields)
		return
	}
	if content.IsUnauthorized(err) {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if content.IsNotFound(err) {
		utils.JSONError(w, http.StatusNotFound, "post not found")
		return
	}
	utils.JSONError(w, http.StatusInternalServerError, "internal error")
}
