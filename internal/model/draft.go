package model

import "time"

// Status is the lifecycle state of a draft. A draft starts as StatusDraft and
// moves to StatusSent or StatusFailed through the send operation only; it never
// leaves either terminal state.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusSent   Status = "sent"
	StatusFailed Status = "failed"
)

type Draft struct {
	ID        int64      `json:"id"`
	Prompt    string     `json:"prompt"`
	Content   string     `json:"content"`
	Subject   string     `json:"subject"`
	Recipient string     `json:"recipient"`
	Tone      string     `json:"tone"`
	Type      string     `json:"type"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	SentAt    *time.Time `json:"sent_at"`
}

// NewDraft builds an unsent draft. The repository assigns ID on insert.
func NewDraft(prompt, content, subject, recipient, tone, emailType string) *Draft {
	return &Draft{
		Prompt:    prompt,
		Content:   content,
		Subject:   subject,
		Recipient: recipient,
		Tone:      tone,
		Type:      emailType,
		Status:    StatusDraft,
		CreatedAt: time.Now().UTC(),
	}
}
