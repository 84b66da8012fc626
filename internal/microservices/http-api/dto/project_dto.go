package dto

import "time"

// CreateProjectRequest: payload to create a project. BranchID is honoured for admins only.
type CreateProjectRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description"`
	Goal        float64    `json:"goal" binding:"required,gt=0,money"`
	Deadline    *time.Time `json:"deadline"`
	Category    string     `json:"category" binding:"max=100"`
	Status      string     `json:"status"`
	BranchID    *string    `json:"branchId" binding:"omitempty,ref"`
}

// UpdateProjectRequest: full replacement of a project's editable fields
type UpdateProjectRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description"`
	Goal        float64    `json:"goal" binding:"required,gt=0,money"`
	Raised      *float64   `json:"raised" binding:"required,gte=0,money"`
	Deadline    *time.Time `json:"deadline"`
	Category    string     `json:"category" binding:"max=100"`
	Status      string     `json:"status" binding:"required"`
}

// ProjectQuery: optional list filters
type ProjectQuery struct {
	BranchID string `form:"branchId" binding:"omitempty,ref"`
	Status   string `form:"status"`
	Category string `form:"category"`
}
