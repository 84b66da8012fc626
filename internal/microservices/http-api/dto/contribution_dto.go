package dto

import (
	"time"

	"churchhub/internal/microservices/http-api/models"
)

// CreateContributionRequest: payload to contribute to a project
type CreateContributionRequest struct {
	ProjectID     string  `json:"projectId" binding:"required,uuid"`
	Amount        float64 `json:"amount" binding:"required,gt=0,money"`
	PaymentMethod string  `json:"paymentMethod" binding:"required,max=50"`
}

// ContributionCreatedResponse: response after a successful contribution
type ContributionCreatedResponse struct {
	Contribution *models.Contribution `json:"contribution"`
	Message      string               `json:"message"`
}

// ProjectContributionResponse: a project's contribution with the contributor identity
type ProjectContributionResponse struct {
	ID            string       `json:"id"`
	UserID        string       `json:"user_id"`
	ProjectID     string       `json:"project_id"`
	Amount        float64      `json:"amount"`
	PaymentMethod string       `json:"payment_method"`
	CreatedAt     time.Time    `json:"created_at"`
	Contributor   *UserSummary `json:"contributor"`
}

func FromModelToProjectContribution(c *models.Contribution) ProjectContributionResponse {
	return ProjectContributionResponse{
		ID:            c.ID,
		UserID:        c.UserID,
		ProjectID:     c.ProjectID,
		Amount:        c.Amount,
		PaymentMethod: c.PaymentMethod,
		CreatedAt:     c.CreatedAt,
		Contributor:   FromModelToUserSummary(c.User),
	}
}
