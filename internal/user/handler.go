package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	userService Service
	log         *logrus.Logger
}

func NewHandler(userService Service, logger *logrus.Logger) *Handler {
	return &Handler{
		userService: userService,
		log:         logger,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// HandleListUsers returns every account. Reachable only through the
// user-management guard, so the caller is always an admin.
func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers()
	if err != nil {
		h.log.WithError(err).Error("Error listing users")
		respondError(w, http.StatusInternalServerError, "Server error while fetching users")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   users,
	})
}

func (h *Handler) HandleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.userService.UpdateUserRole(r.PathValue("id"), req.Role)
	if err != nil {
		if errors.Is(err, ErrInvalidRole) {
			respondError(w, http.StatusBadRequest, ErrInvalidRole.Error())
			return
		}
		if errors.Is(err, ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.WithError(err).Error("Error updating user role")
		respondError(w, http.StatusInternalServerError, "Server error while updating user")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User role updated successfully",
		"user":    updated,
	})
}

func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	callerID, _ := r.Context().Value("userID").(string)
	targetID := r.PathValue("id")
	if targetID == callerID {
		respondError(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	if err := h.userService.DeleteUser(targetID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.WithError(err).Error("Error deleting user")
		respondError(w, http.StatusInternalServerError, "Server error while deleting user")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User deleted successfully",
	})
}
