package group

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fairsplit/fairsplit/pkg/request"
	"github.com/fairsplit/fairsplit/pkg/response"
)

// Handler handles HTTP requests for group operations
type Handler struct {
	service *Service
}

// NewHandler creates a new group handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /groups
// @Summary      Create a new group
// @Description  Create a group with a unique name and up to ten unique participants
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body CreateGroupRequest true "Group creation request"
// @Success      201 {object} response.APIResponse{data=GroupResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /groups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if err := request.Decode(r, &req); err != nil {
		request.WriteError(w, err)
		return
	}

	group, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err, "Failed to create group")
		return
	}

	created := &GroupWithTotal{Group: group}
	response.JSON(w, http.StatusCreated, created.ToResponse())
}

// List handles GET /groups
// @Summary      List groups
// @Description  Get every group with its total expense
// @Tags         groups
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]GroupResponse}
// @Router       /groups [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Failed to list groups")
		return
	}

	groupResponses := make([]*GroupResponse, len(groups))
	for i, g := range groups {
		groupResponses[i] = g.ToResponse()
	}

	response.JSON(w, http.StatusOK, groupResponses)
}

// GetByID handles GET /groups/{groupId}
// @Summary      Get group by ID
// @Tags         groups
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupId} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	group, err := h.service.GetWithTotal(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		h.writeError(w, r, err, "Failed to get group")
		return
	}

	response.JSON(w, http.StatusOK, group.ToResponse())
}

// Delete handles DELETE /groups/{groupId}
// @Summary      Delete a group
// @Description  Delete a group together with all of its expenses
// @Tags         groups
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupId} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "groupId")); err != nil {
		h.writeError(w, r, err, "Failed to delete group")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Group deleted successfully"})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, ErrGroupNotFound):
		slog.WarnContext(r.Context(), "group not found", "path", r.URL.Path)
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrGroupLimitReached),
		errors.Is(err, ErrGroupNameTaken),
		errors.Is(err, ErrTooManyParticipants),
		errors.Is(err, ErrDuplicateParticipant):
		slog.WarnContext(r.Context(), "business rule violation", "error", err)
		response.BadRequest(w, err.Error())
	default:
		slog.ErrorContext(r.Context(), fallback, "error", err)
		response.InternalError(w, fallback)
	}
}
