package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/divvyhq/divvy/pkg/middleware"
	"github.com/divvyhq/divvy/pkg/response"
)

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.ListMine)
	r.Get("/{id}", h.GetByID)
	r.Delete("/{id}", h.Delete)
	r.Get("/group/{groupId}", h.ListByGroup)

	return r
}

// statusForCode maps a validation rejection to an HTTP status. Missing
// referenced records are 404s; everything else is a client mistake.
func statusForCode(code Code) int {
	switch code {
	case CodePayerNotFound, CodeGroupNotFound, CodeCategoryNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// Create handles POST /expenses
// @Summary      Create an expense
// @Description  Creates a standalone expense, or a group expense with splits and settlement reconciliation when group_id, split_type and splits are all present
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.Description == "" {
		response.BadRequest(w, "Description is required")
		return
	}
	if !req.Amount.IsPositive() {
		response.BadRequest(w, "Amount must be positive")
		return
	}
	if req.SplitType != nil {
		if _, err := ParseSplitType(string(*req.SplitType)); err != nil {
			response.BadRequest(w, err.Error())
			return
		}
	}
	for _, split := range req.Splits {
		if !split.Amount.IsPositive() {
			response.BadRequest(w, "Split amounts must be positive")
			return
		}
	}

	created, result, err := h.service.Create(r.Context(), principal, &req)
	if err != nil {
		response.InternalError(w, "Failed to create expense")
		return
	}
	if !result.OK {
		response.Error(w, statusForCode(result.Code), string(result.Code), result.Message)
		return
	}

	expenseResp := created.Expense.ToResponse()
	if len(created.Splits) > 0 {
		expenseResp.Splits = make([]*SplitResponse, len(created.Splits))
		for i, s := range created.Splits {
			expenseResp.Splits[i] = s.ToResponse()
		}
	}

	response.JSON(w, http.StatusCreated, expenseResp)
}

// GetByID handles GET /expenses/{id}
// @Summary      Get expense by ID
// @Description  Get an expense with its splits
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get expense")
		return
	}

	expenseResp := result.Expense.ToResponse()
	if len(result.Splits) > 0 {
		expenseResp.Splits = make([]*SplitResponse, len(result.Splits))
		for i, s := range result.Splits {
			expenseResp.Splits[i] = s.ToResponse()
		}
	}

	response.JSON(w, http.StatusOK, expenseResp)
}

// ListMine handles GET /expenses
// @Summary      List expenses paid by the authenticated user
// @Tags         expenses
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Router       /expenses [get]
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	h.listWith(w, r, func(page, perPage int) ([]*Expense, int, error) {
		return h.service.ListByPayer(r.Context(), principal.UserID, page, perPage)
	})
}

// ListByGroup handles GET /expenses/group/{groupId}
// @Summary      List expenses by group
// @Tags         expenses
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Router       /expenses/group/{groupId} [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")

	h.listWith(w, r, func(page, perPage int) ([]*Expense, int, error) {
		return h.service.ListByGroup(r.Context(), groupID, page, perPage)
	})
}

func (h *Handler) listWith(w http.ResponseWriter, r *http.Request, fetch func(page, perPage int) ([]*Expense, int, error)) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	expenses, total, err := fetch(page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list expenses")
		return
	}

	expenseResponses := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		expenseResponses[i] = e.ToResponse()
	}

	response.JSONWithMeta(w, http.StatusOK, expenseResponses, response.NewMeta(page, perPage, total))
}

// Delete handles DELETE /expenses/{id}
// @Summary      Delete a standalone expense
// @Description  Group expenses cannot be deleted once their settlements have been reconciled
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /expenses/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id, principal.UserID); err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrNotPayer) {
			response.Forbidden(w, err.Error())
			return
		}
		if errors.Is(err, ErrGroupImmutable) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete expense")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully"})
}
