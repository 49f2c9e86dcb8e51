package settlement

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/divvyhq/divvy/internal/group"
	"github.com/divvyhq/divvy/pkg/middleware"
	"github.com/divvyhq/divvy/pkg/response"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListMine)
	r.Get("/group/{groupId}", h.ListByGroup)

	return r
}

// ListMine handles GET /settlements
// @Summary      List the authenticated user's settlements
// @Description  All standing debts involving the user, across groups
// @Tags         settlements
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]SettlementResponse}
// @Router       /settlements [get]
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	settlements, err := h.service.ListForUser(r.Context(), principal.UserID)
	if err != nil {
		response.InternalError(w, "Failed to list settlements")
		return
	}

	response.JSON(w, http.StatusOK, toResponses(settlements))
}

// ListByGroup handles GET /settlements/group/{groupId}
// @Summary      List settlements for a group
// @Tags         settlements
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]SettlementResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/group/{groupId} [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")

	settlements, err := h.service.ListByGroup(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, group.ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list settlements")
		return
	}

	response.JSON(w, http.StatusOK, toResponses(settlements))
}

func toResponses(settlements []*Settlement) []*SettlementResponse {
	responses := make([]*SettlementResponse, len(settlements))
	for i, s := range settlements {
		responses[i] = s.ToResponse()
	}
	return responses
}
