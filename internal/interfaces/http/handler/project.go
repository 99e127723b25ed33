package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/staffhub/backend/internal/application/project"
	"github.com/staffhub/backend/internal/infrastructure/persistence/models"
	"github.com/staffhub/backend/internal/interfaces/http/dto"
)

// ProjectHandler handles project HTTP requests, including the nested member
// and dependency link routes.
type ProjectHandler struct {
	BaseHandler
	projects *project.Service
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projects *project.Service) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// List returns all projects.
func (h *ProjectHandler) List(c *gin.Context) {
	rows, err := h.projects.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Get returns a single project.
func (h *ProjectHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid project id")
		return
	}

	row, err := h.projects.Get(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, row)
}

// Create records a new project.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}

	row, err := h.projects.Create(c.Request.Context(), project.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		RepoURL:     req.RepoURL,
		Status:      models.ProjectStatus(req.Status),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, row)
}

// Update applies a partial update to a project.
func (h *ProjectHandler) Update(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid project id")
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}

	row, err := h.projects.Update(c.Request.Context(), uri.ID, project.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		RepoURL:     req.RepoURL,
		Status:      projectStatusPtr(req.Status),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, row)
}

// Delete removes a project together with its member and dependency links.
func (h *ProjectHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid project id")
		return
	}

	if err := h.projects.Delete(c.Request.Context(), req.ID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": true})
}

// ListMembers returns the memberships of a project.
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid project id")
		return
	}

	rows, err := h.projects.ListMembers(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// AddMember links an employee to a project.
func (h *ProjectHandler) AddMember(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid project id")
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}

	member, err := h.projects.AddMember(c.Request.Context(), project.AddMemberInput{
		ProjectID:  uri.ID,
		EmployeeID: req.EmployeeID,
		Role:       req.Role,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, member)
}

// RemoveMember unlinks an employee from a project.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	var req dto.MemberPathRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid project or employee id")
		return
	}

	if err := h.projects.RemoveMember(c.Request.Context(), req.ID, req.EmployeeID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"removed": true})
}

// ListDependencies returns the dependency links of a project.
func (h *ProjectHandler) ListDependencies(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid project id")
		return
	}

	rows, err := h.projects.ListDependencies(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// AddDependency links a catalog entry to a project.
func (h *ProjectHandler) AddDependency(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid project id")
		return
	}

	var req dto.AddProjectDependencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}

	link, err := h.projects.AddDependency(c.Request.Context(), project.AddDependencyInput{
		ProjectID:    uri.ID,
		DependencyID: req.DependencyID,
		VersionUsed:  req.VersionUsed,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, link)
}

// RemoveDependency unlinks a catalog entry from a project.
func (h *ProjectHandler) RemoveDependency(c *gin.Context) {
	var req dto.DependencyPathRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid project or dependency id")
		return
	}

	if err := h.projects.RemoveDependency(c.Request.Context(), req.ID, req.DependencyID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"removed": true})
}

func projectStatusPtr(s *string) *models.ProjectStatus {
	if s == nil {
		return nil
	}
	status := models.ProjectStatus(*s)
	return &status
}
