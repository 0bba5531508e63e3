package settlement

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fairsplit/fairsplit/internal/expense/split"
	"github.com/fairsplit/fairsplit/internal/group"
	"github.com/fairsplit/fairsplit/pkg/response"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints, mounted under a group
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Get)

	return r
}

// Get handles GET /groups/{groupId}/settlements
// @Summary      Settle up a group
// @Description  Per-member paid/owed/net balances and the transfers that settle them
// @Tags         settlements
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=Report}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupId}/settlements [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Calculate(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		switch {
		case errors.Is(err, group.ErrGroupNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, split.ErrInvalidInput):
			slog.ErrorContext(r.Context(), "stored expenses are inconsistent", "error", err)
			response.InternalError(w, "Failed to calculate settlements")
		default:
			slog.ErrorContext(r.Context(), "failed to calculate settlements", "error", err)
			response.InternalError(w, "Failed to calculate settlements")
		}
		return
	}

	response.JSON(w, http.StatusOK, report)
}
