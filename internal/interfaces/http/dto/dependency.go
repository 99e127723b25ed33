package dto

// CreateDependencyRequest carries attributes for a new catalog entry
type CreateDependencyRequest struct {
	Name              string `json:"name" binding:"required,max=255"`
	Category          string `json:"category" binding:"required,oneof=library framework tool service platform"`
	Version           string `json:"version" binding:"omitempty,max=100"`
	Description       string `json:"description"`
	DocumentationURL  string `json:"documentationUrl" binding:"omitempty,url"`
	InstallationGuide string `json:"installationGuide"`
}

// UpdateDependencyRequest is a partial catalog update; absent fields stay
// untouched
type UpdateDependencyRequest struct {
	Name              *string `json:"name" binding:"omitempty,max=255"`
	Category          *string `json:"category" binding:"omitempty,oneof=library framework tool service platform"`
	Version           *string `json:"version" binding:"omitempty,max=100"`
	Description       *string `json:"description"`
	DocumentationURL  *string `json:"documentationUrl" binding:"omitempty,url"`
	InstallationGuide *string `json:"installationGuide"`
}
