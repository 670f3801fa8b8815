package service

import (
	"context"
	"fmt"

	"question_review/internal/common"
	"question_review/internal/domain/model"
	"question_review/internal/domain/repository"
)

// FeedbackLogService serves the viewer-facing feedback log. Viewers may read
// every entry and rewrite or delete any of them; there is no ownership check
// here by design, and this flow stays separate from the question workflow.
type FeedbackLogService struct {
	logRepo repository.FeedbackLogRepository
}

func NewFeedbackLogService(logRepo repository.FeedbackLogRepository) *FeedbackLogService {
	return &FeedbackLogService{logRepo: logRepo}
}

type UpdateEntryRequest struct {
	Body string `json:"body"`
}

func (s *FeedbackLogService) List(ctx context.Context, requester Identity) ([]model.FeedbackEntry, error) {
	if err := requireLogAccess(requester); err != nil {
		return nil, err
	}
	return s.logRepo.List(ctx)
}

func (s *FeedbackLogService) Update(ctx context.Context, requester Identity, entryID int64, req UpdateEntryRequest) error {
	if err := requireLogAccess(requester); err != nil {
		return err
	}
	if req.Body == "" {
		return fmt.Errorf("body is required: %w", common.ErrValidation)
	}
	return s.logRepo.Update(ctx, entryID, req.Body)
}

func (s *FeedbackLogService) Delete(ctx context.Context, requester Identity, entryID int64) error {
	if err := requireLogAccess(requester); err != nil {
		return err
	}
	return s.logRepo.Delete(ctx, entryID)
}

func requireLogAccess(requester Identity) error {
	if requester.Role == model.RoleViewer || requester.Role == model.RoleAdmin {
		return nil
	}
	return fmt.Errorf("role %q has no feedback log access: %w", requester.Role, common.ErrForbidden)
}
