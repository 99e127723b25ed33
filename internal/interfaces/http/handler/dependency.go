package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/staffhub/backend/internal/application/catalog"
	"github.com/staffhub/backend/internal/infrastructure/persistence/models"
	"github.com/staffhub/backend/internal/interfaces/http/dto"
)

// DependencyHandler handles the shared dependency catalog routes.
type DependencyHandler struct {
	BaseHandler
	catalog *catalog.Service
}

// NewDependencyHandler creates a new dependency handler
func NewDependencyHandler(catalog *catalog.Service) *DependencyHandler {
	return &DependencyHandler{catalog: catalog}
}

// List returns all catalog entries.
func (h *DependencyHandler) List(c *gin.Context) {
	rows, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Get returns a single catalog entry.
func (h *DependencyHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid dependency id")
		return
	}

	row, err := h.catalog.Get(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, row)
}

// Create records a new catalog entry.
func (h *DependencyHandler) Create(c *gin.Context) {
	var req dto.CreateDependencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}

	row, err := h.catalog.Create(c.Request.Context(), catalog.CreateDependencyInput{
		Name:              req.Name,
		Category:          models.DependencyCategory(req.Category),
		Version:           req.Version,
		Description:       req.Description,
		DocumentationURL:  req.DocumentationURL,
		InstallationGuide: req.InstallationGuide,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, row)
}

// Update applies a partial update to a catalog entry.
func (h *DependencyHandler) Update(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid dependency id")
		return
	}

	var req dto.UpdateDependencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}

	row, err := h.catalog.Update(c.Request.Context(), uri.ID, catalog.UpdateDependencyInput{
		Name:              req.Name,
		Category:          dependencyCategoryPtr(req.Category),
		Version:           req.Version,
		Description:       req.Description,
		DocumentationURL:  req.DocumentationURL,
		InstallationGuide: req.InstallationGuide,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, row)
}

// Delete removes a catalog entry together with its project links.
func (h *DependencyHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid dependency id")
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), req.ID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": true})
}

func dependencyCategoryPtr(s *string) *models.DependencyCategory {
	if s == nil {
		return nil
	}
	category := models.DependencyCategory(*s)
	return &category
}
