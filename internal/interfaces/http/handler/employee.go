package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/staffhub/backend/internal/application/directory"
	"github.com/staffhub/backend/internal/infrastructure/persistence/models"
	"github.com/staffhub/backend/internal/interfaces/http/dto"
)

// EmployeeHandler handles employee directory HTTP requests, including the
// nested communication integration routes.
type EmployeeHandler struct {
	BaseHandler
	employees    *directory.EmployeeService
	integrations *directory.IntegrationService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employees *directory.EmployeeService, integrations *directory.IntegrationService) *EmployeeHandler {
	return &EmployeeHandler{
		employees:    employees,
		integrations: integrations,
	}
}

// List returns all employees.
func (h *EmployeeHandler) List(c *gin.Context) {
	rows, err := h.employees.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Get returns a single employee.
func (h *EmployeeHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid employee id")
		return
	}

	row, err := h.employees.Get(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, row)
}

// GetByUserID returns the employee record linked to a user account.
func (h *EmployeeHandler) GetByUserID(c *gin.Context) {
	var req struct {
		UserID uint `uri:"userId" binding:"required,min=1"`
	}
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid user id")
		return
	}

	row, err := h.employees.GetByUserID(c.Request.Context(), req.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, row)
}

// Create records a new employee.
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}

	row, err := h.employees.Create(c.Request.Context(), directory.CreateEmployeeInput{
		UserID:     req.UserID,
		FullName:   req.FullName,
		AvatarURL:  req.AvatarURL,
		Position:   req.Position,
		Department: req.Department,
		HireDate:   req.HireDate,
		Status:     models.EmployeeStatus(req.Status),
		Bio:        req.Bio,
		Phone:      req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, row)
}

// Update applies a partial update to an employee.
func (h *EmployeeHandler) Update(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee id")
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}

	row, err := h.employees.Update(c.Request.Context(), uri.ID, directory.UpdateEmployeeInput{
		FullName:   req.FullName,
		AvatarURL:  req.AvatarURL,
		Position:   req.Position,
		Department: req.Department,
		HireDate:   req.HireDate,
		Status:     employeeStatusPtr(req.Status),
		Bio:        req.Bio,
		Phone:      req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, row)
}

// Delete removes an employee.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid employee id")
		return
	}

	if err := h.employees.Delete(c.Request.Context(), req.ID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": true})
}

// ListIntegrations returns the communication platform links of an employee.
func (h *EmployeeHandler) ListIntegrations(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid employee id")
		return
	}

	records, err := h.integrations.List(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}

// ConnectIntegration links a platform to an employee, overwriting an
// existing link for the same platform.
func (h *EmployeeHandler) ConnectIntegration(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee id")
		return
	}

	var req dto.ConnectIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}

	record, err := h.integrations.Connect(c.Request.Context(), directory.ConnectIntegrationInput{
		EmployeeID:     uri.ID,
		Platform:       models.IntegrationPlatform(req.Platform),
		ExternalID:     req.ExternalID,
		AccessToken:    req.AccessToken,
		RefreshToken:   req.RefreshToken,
		TokenExpiresAt: req.TokenExpiresAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// DisconnectIntegration removes a platform link from an employee.
func (h *EmployeeHandler) DisconnectIntegration(c *gin.Context) {
	var req dto.IntegrationPlatformRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid employee id or platform")
		return
	}

	err := h.integrations.Disconnect(c.Request.Context(), req.ID, models.IntegrationPlatform(req.Platform))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"disconnected": true})
}

func employeeStatusPtr(s *string) *models.EmployeeStatus {
	if s == nil {
		return nil
	}
	status := models.EmployeeStatus(*s)
	return &status
}
