package dto

import (
	"io"

	"churchhub/internal/microservices/http-api/models"
)

// CreateSubmissionRequest: multipart form fields of a new submission
type CreateSubmissionRequest struct {
	Title       string `form:"title" binding:"required,max=300"`
	ContentType string `form:"contentType" binding:"max=50"`
	Content     string `form:"content"`
	AuthorName  string `form:"authorName" binding:"max=200"`
	BranchID    string `form:"branchId" binding:"omitempty,ref"`
}

// FileUpload is one attachment as received by the transport layer.
type FileUpload struct {
	Name    string
	Size    int64
	Content io.Reader
}

// ReviewSubmissionRequest: moves a pending submission to approved or rejected
type ReviewSubmissionRequest struct {
	Status   string  `json:"status" binding:"required"`
	Feedback *string `json:"feedback"`
}

// SubmissionQuery: optional list filter
type SubmissionQuery struct {
	Status string `form:"status"`
}

// SubmissionResponse: submission with rendered content and its submitter
type SubmissionResponse struct {
	models.MagazineSubmission
	ContentHTML string       `json:"content_html,omitempty"`
	Submitter   *UserSummary `json:"submitter,omitempty"`
	BranchName  string       `json:"branch_name,omitempty"`
}

func FromModelToSubmissionResponse(s *models.MagazineSubmission, contentHTML string) SubmissionResponse {
	resp := SubmissionResponse{
		MagazineSubmission: *s,
		ContentHTML:        contentHTML,
		Submitter:          FromModelToUserSummary(s.User),
	}
	if s.Branch != nil {
		resp.BranchName = s.Branch.Name
	}
	return resp
}

// SectionRequest: payload to create or replace a section
type SectionRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	Order       int    `json:"order" binding:"gte=0"`
}
