package handler

import (
	"net/http"

	"churchhub/internal/microservices/http-api/dto"
	"churchhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ContributionHandler struct {
	contributionService service.ContributionService
}

func NewContributionHandler(contributionService service.ContributionService) *ContributionHandler {
	return &ContributionHandler{contributionService: contributionService}
}

func (h *ContributionHandler) Create(c *gin.Context) {
	principal, ok := caller(c)
	if !ok {
		return
	}
	var req dto.CreateContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	contribution, err := h.contributionService.Create(c.Request.Context(), principal, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.ContributionCreatedResponse{
		Contribution: contribution,
		Message:      "Contribution successful",
	})
}

// ListMine returns the caller's contributions with their projects.
func (h *ContributionHandler) ListMine(c *gin.Context) {
	principal, ok := caller(c)
	if !ok {
		return
	}

	contributions, err := h.contributionService.ListByUser(c.Request.Context(), principal.UserID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contributions)
}

func (h *ContributionHandler) ListByProject(c *gin.Context) {
	principal, ok := caller(c)
	if !ok {
		return
	}

	contributions, err := h.contributionService.ListByProject(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contributions)
}
