package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"question_review/internal/common"
	"question_review/internal/domain/model"
	"question_review/internal/domain/repository"
)

// Identity is the caller's identity as carried by the request token. The
// service holds no cross-request state; every call gets the identity anew.
type Identity struct {
	UserID   int64
	Username string
	Role     string
}

func (id Identity) isAdmin() bool { return id.Role == model.RoleAdmin }

// QuestionService is the workflow engine: it decides which role may perform
// which transition on a question, then delegates to the stores.
type QuestionService struct {
	questionRepo repository.QuestionRepository
	userRepo     repository.UserRepository
	feedbackLog  repository.FeedbackLogRepository
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
	feedbackLog repository.FeedbackLogRepository,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		userRepo:     userRepo,
		feedbackLog:  feedbackLog,
	}
}

type EditQuestionRequest struct {
	QuestionID     int64  `json:"question_id"`
	NewQuestion    string `json:"new_question"`
	Editor         string `json:"editor"`
	Difficulty     string `json:"difficulty"`
	Feedback       string `json:"feedback"`
	ApprovalStatus string `json:"approval_status"`
}

type SubmitFeedbackRequest struct {
	QuestionID int64  `json:"question_id"`
	Feedback   string `json:"feedback"`
}

type AssignRangeRequest struct {
	UserID        int64 `json:"user_id"`
	QuestionStart int64 `json:"question_start"`
	QuestionEnd   int64 `json:"question_end"`
}

// ListForUser returns the questions visible for username. Admins see every
// question; a teacher may only request their own list.
func (s *QuestionService) ListForUser(ctx context.Context, requester Identity, username string) ([]model.Question, error) {
	switch requester.Role {
	case model.RoleAdmin:
		// Admins may inspect any listing; their own is the full table.
	case model.RoleTeacher:
		if requester.Username != username {
			return nil, fmt.Errorf("teachers may only list their own questions: %w", common.ErrForbidden)
		}
	default:
		return nil, fmt.Errorf("role %q has no question access: %w", requester.Role, common.ErrForbidden)
	}

	target, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// An unknown username has no assignments; a no-match listing is
			// an empty sequence, not a fault.
			log.Printf("No questions found for user: %s. Check if questions are correctly assigned.", username)
			return []model.Question{}, nil
		}
		return nil, err
	}
	includeAll := target.Role == model.RoleAdmin

	questions, err := s.questionRepo.ListForUser(ctx, username, includeAll)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		// An empty list is a signal worth noticing, not a fault.
		log.Printf("No questions found for user: %s. Check if questions are correctly assigned.", username)
	}
	return questions, nil
}

// Edit applies the full-overwrite edit. Teachers may only edit questions
// assigned to them; the editor field is stamped from the verified identity,
// not trusted from the request body.
func (s *QuestionService) Edit(ctx context.Context, requester Identity, req EditQuestionRequest) error {
	if req.QuestionID <= 0 {
		return fmt.Errorf("question_id is required: %w", common.ErrValidation)
	}
	if req.NewQuestion == "" {
		return fmt.Errorf("new_question is required: %w", common.ErrValidation)
	}

	if err := s.requireQuestionAccess(ctx, requester, req.QuestionID); err != nil {
		return err
	}

	params := repository.EditParams{
		NewText:    req.NewQuestion,
		Editor:     requester.Username,
		Difficulty: req.Difficulty,
		Feedback:   req.Feedback,
		Approved:   req.ApprovalStatus == "approved",
	}
	if err := s.questionRepo.Edit(ctx, req.QuestionID, params); err != nil {
		return err
	}
	log.Printf("Question %d edited by %s", req.QuestionID, requester.Username)
	return nil
}

// SubmitFeedback records feedback on a question and appends it to the
// feedback log.
func (s *QuestionService) SubmitFeedback(ctx context.Context, requester Identity, req SubmitFeedbackRequest) error {
	if req.QuestionID <= 0 {
		return fmt.Errorf("question_id is required: %w", common.ErrValidation)
	}
	if req.Feedback == "" {
		return fmt.Errorf("feedback is required: %w", common.ErrValidation)
	}

	if err := s.requireQuestionAccess(ctx, requester, req.QuestionID); err != nil {
		return err
	}

	if err := s.questionRepo.SubmitFeedback(ctx, req.QuestionID, req.Feedback); err != nil {
		return err
	}
	if err := s.feedbackLog.Append(ctx, req.QuestionID, requester.Username, req.Feedback); err != nil {
		return err
	}
	log.Printf("Feedback submitted for question %d by %s", req.QuestionID, requester.Username)
	return nil
}

// Approve is the admin sign-off. It flips approved and nothing else, so
// calling it twice is the same as calling it once.
func (s *QuestionService) Approve(ctx context.Context, requester Identity, questionID int64) error {
	if !requester.isAdmin() {
		return fmt.Errorf("only admins may approve questions: %w", common.ErrForbidden)
	}
	if questionID <= 0 {
		return fmt.Errorf("question_id is required: %w", common.ErrValidation)
	}
	if err := s.questionRepo.Approve(ctx, questionID); err != nil {
		return err
	}
	log.Printf("Question %d approved by %s", questionID, requester.Username)
	return nil
}

// AssignRange hands the inclusive id range to the teacher identified by
// user_id, overwriting any previous assignment. A reversed range assigns
// nothing and succeeds.
func (s *QuestionService) AssignRange(ctx context.Context, requester Identity, req AssignRangeRequest) (int64, error) {
	if !requester.isAdmin() {
		return 0, fmt.Errorf("only admins may assign questions: %w", common.ErrForbidden)
	}

	target, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return 0, err
	}
	if target.Role != model.RoleTeacher {
		return 0, fmt.Errorf("questions can only be assigned to teachers, %s is %s: %w",
			target.Username, target.Role, common.ErrValidation)
	}

	count, err := s.questionRepo.AssignRange(ctx, target.Username, req.QuestionStart, req.QuestionEnd)
	if err != nil {
		return 0, err
	}
	log.Printf("Assigned %d questions (%d-%d) to %s", count, req.QuestionStart, req.QuestionEnd, target.Username)
	return count, nil
}

// requireQuestionAccess verifies the requester may mutate the question:
// admins always, teachers only when the question is assigned to them.
func (s *QuestionService) requireQuestionAccess(ctx context.Context, requester Identity, questionID int64) error {
	if requester.isAdmin() {
		return nil
	}
	if requester.Role != model.RoleTeacher {
		return fmt.Errorf("role %q has no question access: %w", requester.Role, common.ErrForbidden)
	}

	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return err
	}
	if question.AssignedTo == nil || *question.AssignedTo != requester.Username {
		return fmt.Errorf("question %d is not assigned to %s: %w", questionID, requester.Username, common.ErrForbidden)
	}
	return nil
}
