package service

import (
	"context"
	"testing"

	"question_review/internal/common"
	"question_review/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListForUserAdminSeesEverything(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedQuestions(t, 4)

	admin := env.register(t, "admin", "pw", model.RoleAdmin)
	alice := env.register(t, "alice", "pw", model.RoleTeacher)

	_, err := env.questions.AssignRange(ctx, admin, AssignRangeRequest{
		UserID: alice.UserID, QuestionStart: 1, QuestionEnd: 2,
	})
	require.NoError(t, err)

	all, err := env.questions.ListForUser(ctx, admin, "admin")
	require.NoError(t, err)
	assert.Len(t, all, 4, "admin listing covers every question regardless of assignment")

	alices, err := env.questions.ListForUser(ctx, alice, "alice")
	require.NoError(t, err)
	assert.Len(t, alices, 2)
}

func TestListForUserUnknownTargetIsEmpty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedQuestions(t, 3)

	admin := env.register(t, "admin", "pw", model.RoleAdmin)

	// Nobody named ghost exists; the listing is empty, not a failure.
	questions, err := env.questions.ListForUser(ctx, admin, "ghost")
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestListForUserTeacherScopedToSelf(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedQuestions(t, 2)

	alice := env.register(t, "alice", "pw", model.RoleTeacher)
	env.register(t, "bob", "pw", model.RoleTeacher)

	_, err := env.questions.ListForUser(ctx, alice, "bob")
	assert.ErrorIs(t, err, common.ErrForbidden)

	viewer := env.register(t, "spectator", "pw", model.RoleViewer)
	_, err = env.questions.ListForUser(ctx, viewer, "spectator")
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestEditRequiresOwnAssignment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedQuestions(t, 3)

	admin := env.register(t, "admin", "pw", model.RoleAdmin)
	alice := env.register(t, "alice", "pw", model.RoleTeacher)
	bob := env.register(t, "bob", "pw", model.RoleTeacher)

	_, err := env.questions.AssignRange(ctx, admin, AssignRangeRequest{
		UserID: alice.UserID, QuestionStart: 1, QuestionEnd: 1,
	})
	require.NoError(t, err)

	edit := EditQuestionRequest{QuestionID: 1, NewQuestion: "revised"}

	// Bob never got question 1; an unassigned question looks the same.
	assert.ErrorIs(t, env.questions.Edit(ctx, bob, edit), common.ErrForbidden)
	edit2 := EditQuestionRequest{QuestionID: 2, NewQuestion: "revised"}
	assert.ErrorIs(t, env.questions.Edit(ctx, alice, edit2), common.ErrForbidden)

	require.NoError(t, env.questions.Edit(ctx, alice, edit))

	// Admins bypass the assignment guard.
	require.NoError(t, env.questions.Edit(ctx, admin, edit2))
}

func TestEditStampsEditorFromIdentity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedQuestions(t, 1)

	admin := env.register(t, "admin", "pw", model.RoleAdmin)
	alice := env.register(t, "alice", "pw", model.RoleTeacher)
	_, err := env.questions.AssignRange(ctx, admin, AssignRangeRequest{
		UserID: alice.UserID, QuestionStart: 1, QuestionEnd: 1,
	})
	require.NoError(t, err)

	// The request claims another editor; the verified identity wins.
	req := EditQuestionRequest{QuestionID: 1, NewQuestion: "revised", Editor: "mallory"}
	require.NoError(t, env.questions.Edit(ctx, alice, req))

	questions, err := env.questions.ListForUser(ctx, alice, "alice")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.NotNil(t, questions[0].Editor)
	assert.Equal(t, "alice", *questions[0].Editor)
}

func TestEditValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.register(t, "admin", "pw", model.RoleAdmin)

	err := env.questions.Edit(ctx, admin, EditQuestionRequest{QuestionID: 0, NewQuestion: "x"})
	assert.ErrorIs(t, err, common.ErrValidation)
	err = env.questions.Edit(ctx, admin, EditQuestionRequest{QuestionID: 1, NewQuestion: ""})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestSubmitFeedbackAppendsToLog(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedQuestions(t, 2)

	admin := env.register(t, "admin", "pw", model.RoleAdmin)
	alice := env.register(t, "alice", "pw", model.RoleTeacher)
	_, err := env.questions.AssignRange(ctx, admin, AssignRangeRequest{
		UserID: alice.UserID, QuestionStart: 2, QuestionEnd: 2,
	})
	require.NoError(t, err)

	req := SubmitFeedbackRequest{QuestionID: 2, Feedback: "ambiguous phrasing"}
	require.NoError(t, env.questions.SubmitFeedback(ctx, alice, req))

	entries, err := env.feedbackLog.List(ctx, admin)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].QuestionID)
	assert.Equal(t, "alice", entries[0].Author)
	assert.Equal(t, "ambiguous phrasing", entries[0].Body)
}

func TestApproveAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedQuestions(t, 1)

	admin := env.register(t, "admin", "pw", model.RoleAdmin)
	alice := env.register(t, "alice", "pw", model.RoleTeacher)

	assert.ErrorIs(t, env.questions.Approve(ctx, alice, 1), common.ErrForbidden)
	require.NoError(t, env.questions.Approve(ctx, admin, 1))
	assert.ErrorIs(t, env.questions.Approve(ctx, admin, 999), common.ErrNotFound)
}

func TestAssignRangeTargetMustBeTeacher(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedQuestions(t, 3)

	admin := env.register(t, "admin", "pw", model.RoleAdmin)
	viewer := env.register(t, "spectator", "pw", model.RoleViewer)
	alice := env.register(t, "alice", "pw", model.RoleTeacher)

	_, err := env.questions.AssignRange(ctx, admin, AssignRangeRequest{
		UserID: viewer.UserID, QuestionStart: 1, QuestionEnd: 3,
	})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = env.questions.AssignRange(ctx, admin, AssignRangeRequest{
		UserID: 999, QuestionStart: 1, QuestionEnd: 3,
	})
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = env.questions.AssignRange(ctx, alice, AssignRangeRequest{
		UserID: alice.UserID, QuestionStart: 1, QuestionEnd: 3,
	})
	assert.ErrorIs(t, err, common.ErrForbidden)

	count, err := env.questions.AssignRange(ctx, admin, AssignRangeRequest{
		UserID: alice.UserID, QuestionStart: 1, QuestionEnd: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestFeedbackLogAccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	viewer := env.register(t, "spectator", "pw", model.RoleViewer)
	teacher := env.register(t, "alice", "pw", model.RoleTeacher)

	_, err := env.feedbackLog.List(ctx, teacher)
	assert.ErrorIs(t, err, common.ErrForbidden)

	entries, err := env.feedbackLog.List(ctx, viewer)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Viewers curate without ownership checks, but a missing entry is still
	// a missing entry.
	err = env.feedbackLog.Update(ctx, viewer, 42, UpdateEntryRequest{Body: "x"})
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, env.feedbackLog.Delete(ctx, viewer, 42), common.ErrNotFound)
}
