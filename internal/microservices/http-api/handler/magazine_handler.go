package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"churchhub/internal/apperror"
	"churchhub/internal/microservices/http-api/dto"
	"churchhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const attachmentsField = "attachments"

type MagazineHandler struct {
	magazineService service.MagazineService
}

func NewMagazineHandler(magazineService service.MagazineService) *MagazineHandler {
	return &MagazineHandler{magazineService: magazineService}
}

// CreateSubmission accepts a multipart form with up to the configured number of files
// under "attachments".
func (h *MagazineHandler) CreateSubmission(c *gin.Context) {
	principal, ok := caller(c)
	if !ok {
		return
	}
	var req dto.CreateSubmissionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	var files []dto.FileUpload
	if form, err := c.MultipartForm(); err == nil {
		for _, header := range form.File[attachmentsField] {
			f, err := header.Open()
			if err != nil {
				c.Error(apperror.Wrap(apperror.KindValidation, "Unreadable attachment", err))
				return
			}
			defer f.Close()
			files = append(files, dto.FileUpload{Name: header.Filename, Size: header.Size, Content: f})
		}
	} else if !errors.Is(err, http.ErrNotMultipart) {
		c.Error(apperror.Wrap(apperror.KindValidation, "Invalid multipart form", err))
		return
	}

	submission, err := h.magazineService.CreateSubmission(c.Request.Context(), principal, req, files)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, submission)
}

// ListSubmissions applies the caller's visibility scope, then the optional status filter.
func (h *MagazineHandler) ListSubmissions(c *gin.Context) {
	principal, ok := caller(c)
	if !ok {
		return
	}
	var query dto.SubmissionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(bindError(err))
		return
	}

	submissions, err := h.magazineService.ListSubmissions(c.Request.Context(), principal, query)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}

func (h *MagazineHandler) GetSubmission(c *gin.Context) {
	principal, ok := caller(c)
	if !ok {
		return
	}

	submission, err := h.magazineService.GetSubmission(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, submission)
}

func (h *MagazineHandler) ReviewSubmission(c *gin.Context) {
	principal, ok := caller(c)
	if !ok {
		return
	}
	var req dto.ReviewSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	submission, err := h.magazineService.ReviewSubmission(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, submission)
}

func (h *MagazineHandler) Attachment(c *gin.Context) {
	principal, ok := caller(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.Error(apperror.Validation("attachment index must be a non-negative integer"))
		return
	}

	body, attachment, err := h.magazineService.OpenAttachment(c.Request.Context(), principal, c.Param("id"), index)
	if err != nil {
		c.Error(err)
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", attachment.OriginalName))
	c.DataFromReader(http.StatusOK, attachment.Size, attachment.MimeType, body, nil)
}

func (h *MagazineHandler) ListSections(c *gin.Context) {
	sections, err := h.magazineService.ListSections(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, sections)
}

func (h *MagazineHandler) CreateSection(c *gin.Context) {
	var req dto.SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	section, err := h.magazineService.CreateSection(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, section)
}

func (h *MagazineHandler) UpdateSection(c *gin.Context) {
	var req dto.SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	section, err := h.magazineService.UpdateSection(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, section)
}

func (h *MagazineHandler) DeleteSection(c *gin.Context) {
	if err := h.magazineService.DeleteSection(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Section deleted successfully"})
}

