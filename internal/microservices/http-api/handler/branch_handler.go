package handler

import (
	"net/http"

	"churchhub/internal/microservices/http-api/dto"
	"churchhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type BranchHandler struct {
	branchService service.BranchService
}

func NewBranchHandler(branchService service.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

func (h *BranchHandler) List(c *gin.Context) {
	branches, err := h.branchService.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, branches)
}

func (h *BranchHandler) Get(c *gin.Context) {
	branch, err := h.branchService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandler) Create(c *gin.Context) {
	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	branch, err := h.branchService.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, branch)
}

func (h *BranchHandler) Update(c *gin.Context) {
	var req dto.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	branch, err := h.branchService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandler) Members(c *gin.Context) {
	principal, ok := caller(c)
	if !ok {
		return
	}

	members, err := h.branchService.Members(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *BranchHandler) Stats(c *gin.Context) {
	principal, ok := caller(c)
	if !ok {
		return
	}

	stats, err := h.branchService.Stats(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Projects lists the projects of one branch.
func (h *BranchHandler) Projects(c *gin.Context) {
	projects, err := h.branchService.Projects(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, projects)
}
