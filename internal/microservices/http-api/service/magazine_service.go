package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"churchhub/internal/access"
	"churchhub/internal/apperror"
	"churchhub/internal/microservices/http-api/dto"
	"churchhub/internal/microservices/http-api/models"
	"churchhub/internal/microservices/http-api/repository"
	"churchhub/internal/render"
	"churchhub/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"gorm.io/gorm"
)

// sniffLen is the prefix mimetype needs to classify the formats we accept.
const sniffLen = 3072

var allowedMimeTypes = []string{"image/jpeg", "image/png", "application/pdf"}

// UploadPolicy bounds the attachments of one submission.
type UploadPolicy struct {
	MaxFiles int
	MaxSize  int64
}

type MagazineService interface {
	CreateSubmission(ctx context.Context, caller *access.Principal, req dto.CreateSubmissionRequest, files []dto.FileUpload) (*dto.SubmissionResponse, error)
	ListSubmissions(ctx context.Context, caller *access.Principal, query dto.SubmissionQuery) ([]dto.SubmissionResponse, error)
	GetSubmission(ctx context.Context, caller *access.Principal, id string) (*dto.SubmissionResponse, error)
	ReviewSubmission(ctx context.Context, caller *access.Principal, id string, req dto.ReviewSubmissionRequest) (*dto.SubmissionResponse, error)
	// OpenAttachment streams one attachment; the caller must close the reader.
	OpenAttachment(ctx context.Context, caller *access.Principal, id string, index int) (io.ReadCloser, *models.Attachment, error)

	ListSections(ctx context.Context) ([]models.MagazineSection, error)
	CreateSection(ctx context.Context, req dto.SectionRequest) (*models.MagazineSection, error)
	UpdateSection(ctx context.Context, id string, req dto.SectionRequest) (*models.MagazineSection, error)
	DeleteSection(ctx context.Context, id string) error
}

type magazineService struct {
	magazineRepo repository.MagazineRepository
	userRepo     repository.UserRepository
	branchRepo   repository.BranchRepository
	store        storage.Store
	publisher    NotificationPublisher
	policy       UploadPolicy
	logger       *slog.Logger
	now          func() time.Time
}

func NewMagazineService(
	magazineRepo repository.MagazineRepository,
	userRepo repository.UserRepository,
	branchRepo repository.BranchRepository,
	store storage.Store,
	publisher NotificationPublisher,
	policy UploadPolicy,
	logger *slog.Logger,
) MagazineService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &magazineService{
		magazineRepo: magazineRepo,
		userRepo:     userRepo,
		branchRepo:   branchRepo,
		store:        store,
		publisher:    publisher,
		policy:       policy,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *magazineService) CreateSubmission(ctx context.Context, caller *access.Principal, req dto.CreateSubmissionRequest, files []dto.FileUpload) (*dto.SubmissionResponse, error) {
	if len(files) > s.policy.MaxFiles {
		return nil, apperror.Validation(fmt.Sprintf("at most %d attachments are allowed", s.policy.MaxFiles))
	}

	var branchID *string
	if req.BranchID != "" {
		if _, err := s.branchRepo.GetByID(ctx, req.BranchID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.Validation("Unknown branch")
			}
			return nil, apperror.Internal("failed to load branch", err)
		}
		id := req.BranchID
		branchID = &id
	}

	attachments, err := s.storeAttachments(ctx, files)
	if err != nil {
		return nil, err
	}

	authorName := req.AuthorName
	if authorName == "" {
		authorName = caller.UserName
	}
	submission := &models.MagazineSubmission{
		Title:       req.Title,
		ContentType: req.ContentType,
		Content:     req.Content,
		AuthorName:  authorName,
		UserID:      caller.UserID,
		BranchID:    branchID,
		Status:      models.SubmissionPending,
		Attachments: attachments,
	}

	var notifications []models.Notification
	if branchID != nil {
		coordinators, err := s.userRepo.ListIDsByRoleAndBranch(ctx, access.RoleBranchCoordinator, *branchID)
		if err != nil {
			s.removeAttachments(ctx, attachments)
			return nil, apperror.Internal("failed to list coordinators", err)
		}
		message := fmt.Sprintf(`%s has submitted "%s" for review.`, authorName, req.Title)
		for _, id := range coordinators {
			notifications = append(notifications, models.Notification{
				UserID:  id,
				Title:   "New Magazine Submission",
				Message: message,
				Type:    models.NotificationTypeMagazine,
			})
		}
	}

	if err := s.magazineRepo.CreateSubmission(ctx, submission, notifications); err != nil {
		s.removeAttachments(ctx, attachments)
		return nil, apperror.Internal("failed to create submission", err)
	}

	for i := range notifications {
		s.publisher.Publish(notifications[i].UserID, &notifications[i])
	}
	s.logger.InfoContext(ctx, "submission created",
		"submission_id", submission.ID,
		"user_id", caller.UserID,
		"attachments", len(attachments),
		"notified", len(notifications),
	)

	resp := dto.FromModelToSubmissionResponse(submission, render.Markdown(submission.Content))
	return &resp, nil
}

// storeAttachments validates and writes every file. When one fails, the files
// already written are removed again.
func (s *magazineService) storeAttachments(ctx context.Context, files []dto.FileUpload) ([]models.Attachment, error) {
	attachments := make([]models.Attachment, 0, len(files))
	for _, file := range files {
		attachment, err := s.storeAttachment(ctx, file)
		if err != nil {
			s.removeAttachments(ctx, attachments)
			return nil, err
		}
		attachments = append(attachments, *attachment)
	}
	return attachments, nil
}

func (s *magazineService) storeAttachment(ctx context.Context, file dto.FileUpload) (*models.Attachment, error) {
	if file.Size > s.policy.MaxSize {
		return nil, apperror.Validation(fmt.Sprintf("%s exceeds the %d byte limit", file.Name, s.policy.MaxSize))
	}

	// the declared content type is client-controlled, so classify the bytes instead
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, apperror.Internal("failed to read upload", err)
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	if !mimetype.EqualsAny(detected.String(), allowedMimeTypes...) {
		return nil, apperror.Validation(fmt.Sprintf("%s: only JPEG, PNG and PDF files are allowed", file.Name))
	}

	// the extension follows the detected type, never the client filename
	name := storage.ObjectName(detected.Extension())
	path, err := s.store.Put(ctx, name, io.MultiReader(bytes.NewReader(head), file.Content), file.Size, detected.String())
	if err != nil {
		return nil, apperror.Internal("failed to store attachment", err)
	}

	return &models.Attachment{
		Filename:     name,
		OriginalName: file.Name,
		Path:         path,
		MimeType:     detected.String(),
		Size:         file.Size,
	}, nil
}

func (s *magazineService) removeAttachments(ctx context.Context, attachments []models.Attachment) {
	for _, a := range attachments {
		if err := s.store.Delete(ctx, a.Path); err != nil {
			s.logger.WarnContext(ctx, "failed to remove orphaned attachment", "path", a.Path, "error", err)
		}
	}
}

func (s *magazineService) ListSubmissions(ctx context.Context, caller *access.Principal, query dto.SubmissionQuery) ([]dto.SubmissionResponse, error) {
	var filter models.SubmissionFilter
	if query.Status != "" {
		status := models.SubmissionStatus(query.Status)
		if !status.Valid() {
			return nil, apperror.Validation("status must be one of pending, approved, rejected")
		}
		filter.Status = status
	}

	switch caller.Role {
	case access.RoleAdmin:
	case access.RoleBranchCoordinator:
		if caller.BranchID == nil {
			return []dto.SubmissionResponse{}, nil
		}
		filter.BranchID = *caller.BranchID
	default:
		filter.UserID = caller.UserID
	}

	submissions, err := s.magazineRepo.ListSubmissions(ctx, filter)
	if err != nil {
		return nil, apperror.Internal("failed to list submissions", err)
	}

	responses := make([]dto.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		responses = append(responses, dto.FromModelToSubmissionResponse(&submissions[i], ""))
	}
	return responses, nil
}

func (s *magazineService) loadVisible(ctx context.Context, caller *access.Principal, id string) (*models.MagazineSubmission, error) {
	submission, err := s.magazineRepo.GetSubmission(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Submission not found")
	}
	if !caller.CanViewSubmission(submission.UserID, submission.BranchID) {
		return nil, apperror.Forbidden("Access denied")
	}
	return submission, nil
}

func (s *magazineService) GetSubmission(ctx context.Context, caller *access.Principal, id string) (*dto.SubmissionResponse, error) {
	submission, err := s.loadVisible(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromModelToSubmissionResponse(submission, render.Markdown(submission.Content))
	return &resp, nil
}

func reviewMessage(title string, status models.SubmissionStatus) string {
	if status == models.SubmissionApproved {
		return fmt.Sprintf(`Your submission "%s" has been approved.`, title)
	}
	return fmt.Sprintf(`Your submission "%s" needs revision.`, title)
}

func (s *magazineService) ReviewSubmission(ctx context.Context, caller *access.Principal, id string, req dto.ReviewSubmissionRequest) (*dto.SubmissionResponse, error) {
	status := models.SubmissionStatus(req.Status)
	if !status.Terminal() {
		return nil, apperror.Validation("status must be approved or rejected")
	}

	submission, err := s.magazineRepo.GetSubmission(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Submission not found")
	}
	if !caller.ManagesBranch(submission.BranchID) {
		return nil, ErrNotBranchScope
	}
	if submission.Status.Terminal() {
		return nil, apperror.Conflict(repository.ErrAlreadyReviewed.Error())
	}

	notification := &models.Notification{
		UserID:  submission.UserID,
		Title:   "Magazine Submission Update",
		Message: reviewMessage(submission.Title, status),
		Type:    models.NotificationTypeMagazine,
	}
	review := repository.Review{
		Status:     status,
		Feedback:   req.Feedback,
		ReviewerID: caller.UserID,
		ReviewedAt: s.now().UTC(),
	}

	updated, err := s.magazineRepo.ReviewSubmission(ctx, id, review, notification)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyReviewed):
			return nil, apperror.Conflict(err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperror.NotFound("Submission not found")
		}
		return nil, apperror.Internal("failed to review submission", err)
	}

	s.publisher.Publish(notification.UserID, notification)
	s.logger.InfoContext(ctx, "submission reviewed", "submission_id", id, "status", status, "reviewer_id", caller.UserID)

	resp := dto.FromModelToSubmissionResponse(updated, render.Markdown(updated.Content))
	return &resp, nil
}

func (s *magazineService) OpenAttachment(ctx context.Context, caller *access.Principal, id string, index int) (io.ReadCloser, *models.Attachment, error) {
	submission, err := s.loadVisible(ctx, caller, id)
	if err != nil {
		return nil, nil, err
	}
	if index < 0 || index >= len(submission.Attachments) {
		return nil, nil, apperror.NotFound("Attachment not found")
	}

	attachment := submission.Attachments[index]
	body, err := s.store.Open(ctx, attachment.Path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, apperror.NotFound("Attachment not found")
		}
		return nil, nil, apperror.Internal("failed to open attachment", err)
	}
	return body, &attachment, nil
}

func (s *magazineService) ListSections(ctx context.Context) ([]models.MagazineSection, error) {
	sections, err := s.magazineRepo.ListSections(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to list sections", err)
	}
	return sections, nil
}

func (s *magazineService) CreateSection(ctx context.Context, req dto.SectionRequest) (*models.MagazineSection, error) {
	section := &models.MagazineSection{
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := s.magazineRepo.CreateSection(ctx, section); err != nil {
		return nil, apperror.Internal("failed to create section", err)
	}
	return section, nil
}

func (s *magazineService) UpdateSection(ctx context.Context, id string, req dto.SectionRequest) (*models.MagazineSection, error) {
	section, err := s.magazineRepo.GetSection(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Section not found")
	}

	section.Title = req.Title
	section.Description = req.Description
	section.Order = req.Order
	if err := s.magazineRepo.UpdateSection(ctx, section); err != nil {
		return nil, apperror.Internal("failed to update section", err)
	}
	return section, nil
}

func (s *magazineService) DeleteSection(ctx context.Context, id string) error {
	if err := s.magazineRepo.DeleteSection(ctx, id); err != nil {
		return lookupError(err, "Section not found")
	}
	return nil
}
