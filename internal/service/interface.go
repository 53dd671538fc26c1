package service

import (
	"context"

	"instamailer/internal/model"
)

type DraftService interface {
	CreateDraft(ctx context.Context, prompt, recipient, tone, emailType string) (*model.Draft, error)
	SendDraft(ctx context.Context, id int64) error
	ListDrafts(ctx context.Context) ([]*model.Draft, error)
	UpdateContent(ctx context.Context, id int64, content string) error
	DeleteDraft(ctx context.Context, id int64) error
	GetStats(ctx context.Context) (*model.StatsReport, error)
}

// ContentGenerator produces an email body and subject for a prompt. It never
// fails outward: when the generation backend is unavailable it falls back to a
// templated draft.
type ContentGenerator interface {
	Generate(ctx context.Context, prompt, tone string) (content, subject string)
}

// Mailer delivers a draft over SMTP. A nil return means the message was
// accepted by the relay; any error counts as a failed dispatch.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
