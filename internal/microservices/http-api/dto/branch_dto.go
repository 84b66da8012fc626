package dto

// CreateBranchRequest: payload to create a branch
type CreateBranchRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// UpdateBranchRequest: partial update; nil fields are kept
type UpdateBranchRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}
