package service_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"instamailer/internal/generator"
	"instamailer/internal/logger"
	"instamailer/internal/mailer"
	"instamailer/internal/model"
	"instamailer/internal/repository"
	"instamailer/internal/repository/memory"
	"instamailer/internal/service"
)

func newTestService() (service.DraftService, *memory.InMemoryDraftRepository, *generator.MockGenerator, *mailer.MockMailer) {
	repo := memory.NewInMemoryDraftRepository()
	gen := generator.NewMockGenerator()
	mail := mailer.NewMockMailer()
	svc := service.NewDraftService(repo, gen, mail, logger.NewWithWriter(io.Discard))
	return svc, repo, gen, mail
}

func TestCreateDraftRoundTrip(t *testing.T) {
	// Setup
	svc, repo, gen, _ := newTestService()
	gen.GenerateFunc = func(ctx context.Context, prompt, tone string) (string, string) {
		return "Hello,\n\nbody\n\nBest", "Hello,"
	}

	// Execute
	draft, err := svc.CreateDraft(context.Background(), "say hello", "to@example.com", "casual", "outreach")

	// Verify
	assert.NoError(t, err)
	assert.NotZero(t, draft.ID)
	assert.Equal(t, model.StatusDraft, draft.Status)
	assert.Nil(t, draft.SentAt)

	stored, err := repo.FindByID(context.Background(), draft.ID)
	assert.NoError(t, err)
	assert.Equal(t, draft.Prompt, stored.Prompt)
	assert.Equal(t, draft.Content, stored.Content)
	assert.Equal(t, draft.Subject, stored.Subject)
	assert.Equal(t, draft.Recipient, stored.Recipient)
	assert.Equal(t, draft.Tone, stored.Tone)
	assert.Equal(t, draft.Type, stored.Type)
	assert.Equal(t, draft.Status, stored.Status)
}

func TestCreateDraftDefaults(t *testing.T) {
	svc, _, _, _ := newTestService()

	draft, err := svc.CreateDraft(context.Background(), "say hello", "to@example.com", "", "")

	assert.NoError(t, err)
	assert.Equal(t, "friendly", draft.Tone)
	assert.Equal(t, "general", draft.Type)
}

func TestSendDraftSuccess(t *testing.T) {
	// Setup
	svc, repo, _, mail := newTestService()
	var sentTo, sentSubject string
	mail.SendFunc = func(ctx context.Context, to, subject, body string) error {
		sentTo = to
		sentSubject = subject
		return nil
	}
	draft, _ := svc.CreateDraft(context.Background(), "say hello", "to@example.com", "friendly", "general")

	// Execute
	err := svc.SendDraft(context.Background(), draft.ID)

	// Verify
	assert.NoError(t, err)
	assert.Equal(t, "to@example.com", sentTo)
	assert.NotEmpty(t, sentSubject)

	stored, _ := repo.FindByID(context.Background(), draft.ID)
	assert.Equal(t, model.StatusSent, stored.Status)
	assert.NotNil(t, stored.SentAt)
}

func TestSendDraftFailureMarksFailed(t *testing.T) {
	// Setup
	svc, repo, _, mail := newTestService()
	mail.SendFunc = func(ctx context.Context, to, subject, body string) error {
		return errors.New("relay refused")
	}
	draft, _ := svc.CreateDraft(context.Background(), "say hello", "to@example.com", "friendly", "general")

	// Execute
	err := svc.SendDraft(context.Background(), draft.ID)

	// Verify
	assert.ErrorIs(t, err, service.ErrSendFailed)

	stored, _ := repo.FindByID(context.Background(), draft.ID)
	assert.Equal(t, model.StatusFailed, stored.Status)
	assert.Nil(t, stored.SentAt)
}

func TestSendDraftTerminalStatusIsFinal(t *testing.T) {
	// Setup: a sent draft and a failed draft
	svc, repo, _, mail := newTestService()
	sent, _ := svc.CreateDraft(context.Background(), "one", "to@example.com", "friendly", "general")
	assert.NoError(t, svc.SendDraft(context.Background(), sent.ID))

	mail.SendFunc = func(ctx context.Context, to, subject, body string) error {
		return errors.New("relay refused")
	}
	failed, _ := svc.CreateDraft(context.Background(), "two", "to@example.com", "friendly", "general")
	assert.Error(t, svc.SendDraft(context.Background(), failed.ID))

	// Execute: re-send both
	mail.SendFunc = nil
	errSent := svc.SendDraft(context.Background(), sent.ID)
	errFailed := svc.SendDraft(context.Background(), failed.ID)

	// Verify: neither draft leaves its terminal status
	assert.ErrorIs(t, errSent, service.ErrAlreadyDispatched)
	assert.ErrorIs(t, errFailed, service.ErrAlreadyDispatched)

	storedSent, _ := repo.FindByID(context.Background(), sent.ID)
	storedFailed, _ := repo.FindByID(context.Background(), failed.ID)
	assert.Equal(t, model.StatusSent, storedSent.Status)
	assert.Equal(t, model.StatusFailed, storedFailed.Status)
	assert.Nil(t, storedFailed.SentAt)
}

func TestSendDraftNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	err := svc.SendDraft(context.Background(), 42)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateContent(t *testing.T) {
	svc, repo, _, _ := newTestService()
	draft, _ := svc.CreateDraft(context.Background(), "say hello", "to@example.com", "friendly", "general")

	err := svc.UpdateContent(context.Background(), draft.ID, "edited body")

	assert.NoError(t, err)
	stored, _ := repo.FindByID(context.Background(), draft.ID)
	assert.Equal(t, "edited body", stored.Content)
	// Only content changes on edit.
	assert.Equal(t, draft.Subject, stored.Subject)
	assert.Equal(t, model.StatusDraft, stored.Status)
}

func TestUpdateContentNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	err := svc.UpdateContent(context.Background(), 42, "edited body")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteDraft(t *testing.T) {
	svc, _, _, _ := newTestService()
	draft, _ := svc.CreateDraft(context.Background(), "say hello", "to@example.com", "friendly", "general")

	err := svc.DeleteDraft(context.Background(), draft.ID)

	assert.NoError(t, err)
	drafts, _ := svc.ListDrafts(context.Background())
	assert.Empty(t, drafts)
}

func TestDeleteDraftNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()
	draft, _ := svc.CreateDraft(context.Background(), "say hello", "to@example.com", "friendly", "general")

	err := svc.DeleteDraft(context.Background(), 42)

	assert.ErrorIs(t, err, repository.ErrNotFound)

	// The store stays intact after a missing-id delete.
	drafts, listErr := svc.ListDrafts(context.Background())
	assert.NoError(t, listErr)
	assert.Len(t, drafts, 1)
	assert.Equal(t, draft.ID, drafts[0].ID)
}

func TestGetStats(t *testing.T) {
	svc, _, _, _ := newTestService()
	first, _ := svc.CreateDraft(context.Background(), "one", "to@example.com", "friendly", "general")
	_, _ = svc.CreateDraft(context.Background(), "two", "to@example.com", "formal", "general")
	assert.NoError(t, svc.SendDraft(context.Background(), first.ID))

	report, err := svc.GetStats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, report.TotalSent)
	assert.Equal(t, 1, report.TotalDrafts)
	assert.Equal(t, 2, report.TotalEmails)
	assert.Equal(t, 50.0, report.SuccessRate)
	assert.Equal(t, 2, report.RecentActivity)
}
