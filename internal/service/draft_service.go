package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"instamailer/internal/logger"
	"instamailer/internal/model"
	"instamailer/internal/repository"
	"instamailer/internal/stats"
)

var (
	// ErrSendFailed marks a dispatch the SMTP relay rejected; the draft is left
	// in status failed.
	ErrSendFailed = errors.New("failed to send email")

	// ErrAlreadyDispatched rejects a send on a draft that already reached a
	// terminal status. Sent and failed drafts never change state again.
	ErrAlreadyDispatched = errors.New("draft already dispatched")
)

const (
	defaultTone = "friendly"
	defaultType = "general"
)

type draftService struct {
	draftRepo repository.DraftRepository
	generator ContentGenerator
	mailer    Mailer
	logger    *logger.Logger
}

func NewDraftService(
	draftRepo repository.DraftRepository,
	generator ContentGenerator,
	mailer Mailer,
	logger *logger.Logger,
) DraftService {
	return &draftService{
		draftRepo: draftRepo,
		generator: generator,
		mailer:    mailer,
		logger:    logger,
	}
}

func (s *draftService) CreateDraft(ctx context.Context, prompt, recipient, tone, emailType string) (*model.Draft, error) {
	if tone == "" {
		tone = defaultTone
	}
	if emailType == "" {
		emailType = defaultType
	}

	content, subject := s.generator.Generate(ctx, prompt, tone)

	draft := model.NewDraft(prompt, content, subject, recipient, tone, emailType)
	if err := s.draftRepo.Create(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	s.logger.Info("Created draft", draft.ID, "for", draft.Recipient)
	return draft, nil
}

func (s *draftService) SendDraft(ctx context.Context, id int64) error {
	draft, err := s.draftRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if draft.Status != model.StatusDraft {
		return ErrAlreadyDispatched
	}

	if err := s.mailer.Send(ctx, draft.Recipient, sendSubject(draft), draft.Content); err != nil {
		draft.Status = model.StatusFailed
		if updateErr := s.draftRepo.Update(ctx, draft); updateErr != nil {
			s.logger.Error("Failed to record failed status for draft", draft.ID, ":", updateErr)
		}
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	now := time.Now().UTC()
	draft.Status = model.StatusSent
	draft.SentAt = &now
	if err := s.draftRepo.Update(ctx, draft); err != nil {
		return fmt.Errorf("failed to record sent status: %w", err)
	}

	s.logger.Info("Sent draft", draft.ID, "to", draft.Recipient)
	return nil
}

func (s *draftService) ListDrafts(ctx context.Context) ([]*model.Draft, error) {
	return s.draftRepo.FindAll(ctx)
}

func (s *draftService) UpdateContent(ctx context.Context, id int64, content string) error {
	draft, err := s.draftRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	draft.Content = content
	return s.draftRepo.Update(ctx, draft)
}

func (s *draftService) DeleteDraft(ctx context.Context, id int64) error {
	return s.draftRepo.Delete(ctx, id)
}

func (s *draftService) GetStats(ctx context.Context) (*model.StatsReport, error) {
	drafts, err := s.draftRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load drafts for stats: %w", err)
	}
	return stats.Compute(drafts, time.Now()), nil
}

// sendSubject falls back to a truncated first content line when a draft has no
// stored subject.
func sendSubject(draft *model.Draft) string {
	if draft.Subject != "" {
		return draft.Subject
	}
	if draft.Content == "" {
		return "Email"
	}
	firstLine := strings.SplitN(draft.Content, "\n", 2)[0]
	if len(firstLine) > 50 {
		firstLine = firstLine[:50]
	}
	return firstLine
}
