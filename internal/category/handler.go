package category

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/divvyhq/divvy/pkg/middleware"
	"github.com/divvyhq/divvy/pkg/response"
)

// Handler handles HTTP requests for category operations
type Handler struct {
	service *Service
}

// NewHandler creates a new category handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for category endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.With(middleware.RequireAdmin).Post("/global", h.CreateGlobal)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)

	return r
}

// Create handles POST /categories
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body CreateCategoryRequest true "Category creation request"
// @Success      201 {object} response.APIResponse{data=CategoryResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /categories [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.Name == "" {
		response.BadRequest(w, "Category name is required")
		return
	}

	category, err := h.service.Create(r.Context(), principal.UserID, &req)
	if err != nil {
		response.InternalError(w, "Failed to create category")
		return
	}

	response.JSON(w, http.StatusCreated, category.ToResponse())
}

// CreateGlobal handles POST /categories/global
// @Summary      Create a global category
// @Description  Global categories are visible to every user. Admins only.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body CreateCategoryRequest true "Category creation request"
// @Success      201 {object} response.APIResponse{data=CategoryResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /categories/global [post]
func (h *Handler) CreateGlobal(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.Name == "" {
		response.BadRequest(w, "Category name is required")
		return
	}

	category, err := h.service.CreateGlobal(r.Context(), &req)
	if err != nil {
		response.InternalError(w, "Failed to create category")
		return
	}

	response.JSON(w, http.StatusCreated, category.ToResponse())
}

// List handles GET /categories
// @Summary      List categories visible to the authenticated user
// @Tags         categories
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]CategoryResponse}
// @Router       /categories [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	categories, err := h.service.ListVisibleToUser(r.Context(), principal.UserID)
	if err != nil {
		response.InternalError(w, "Failed to list categories")
		return
	}

	categoryResponses := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		categoryResponses[i] = c.ToResponse()
	}

	response.JSON(w, http.StatusOK, categoryResponses)
}

// GetByID handles GET /categories/{id}
// @Summary      Get category by ID
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID"
// @Success      200 {object} response.APIResponse{data=CategoryResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /categories/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	category, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get category")
		return
	}

	response.JSON(w, http.StatusOK, category.ToResponse())
}
