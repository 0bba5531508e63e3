package expense

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fairsplit/fairsplit/internal/expense/split"
	"github.com/fairsplit/fairsplit/internal/group"
	"github.com/fairsplit/fairsplit/pkg/request"
	"github.com/fairsplit/fairsplit/pkg/response"
)

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints, mounted under a group
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)

	return r
}

// Create handles POST /groups/{groupId}/expenses
// @Summary      Add an expense
// @Description  Record an expense. Without contributions the amount is split equally across the group.
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupId}/expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := request.Decode(r, &req); err != nil {
		request.WriteError(w, err)
		return
	}

	expense, err := h.service.Add(r.Context(), chi.URLParam(r, "groupId"), &req)
	if err != nil {
		h.writeError(w, r, err, "Failed to add expense")
		return
	}

	response.JSON(w, http.StatusCreated, expense.ToResponse())
}

// List handles GET /groups/{groupId}/expenses
// @Summary      List expenses of a group
// @Description  Expenses ordered by date, newest first
// @Tags         expenses
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupId}/expenses [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.service.ListByGroup(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		h.writeError(w, r, err, "Failed to list expenses")
		return
	}

	expenseResponses := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		expenseResponses[i] = e.ToResponse()
	}

	response.JSON(w, http.StatusOK, expenseResponses)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, group.ErrGroupNotFound):
		slog.WarnContext(r.Context(), "group not found", "path", r.URL.Path)
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrFutureDate),
		errors.Is(err, ErrPayerNotParticipant),
		errors.Is(err, ErrUnknownParticipant),
		errors.Is(err, split.ErrInvalidInput):
		slog.WarnContext(r.Context(), "expense rejected", "error", err)
		response.BadRequest(w, err.Error())
	default:
		slog.ErrorContext(r.Context(), fallback, "error", err)
		response.InternalError(w, fallback)
	}
}
