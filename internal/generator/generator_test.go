package generator

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"instamailer/internal/config"
	"instamailer/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard)
}

func TestGenerateFallbackFormalTone(t *testing.T) {
	// Backend not configured: the deterministic template applies.
	cfg := &config.Config{}
	gen := NewClient(cfg, testLogger())

	content, subject := gen.Generate(context.Background(), "renew license", "formal")

	assert.True(t, strings.HasPrefix(content, "Dear Sir/Madam,"))
	assert.True(t, strings.HasSuffix(content, "Best regards,\n[Your Name]"))
	assert.Contains(t, content, "renew license")
	assert.Equal(t, "Dear Sir/Madam,", subject)
}

func TestGenerateFallbackFriendlyTone(t *testing.T) {
	cfg := &config.Config{}
	gen := NewClient(cfg, testLogger())

	content, _ := gen.Generate(context.Background(), "lunch on friday", "Friendly")

	// Tone matching is case-insensitive.
	assert.True(t, strings.HasPrefix(content, "Hi there,"))
	assert.True(t, strings.HasSuffix(content, "Best,\n[Your Name]"))
}

func TestGenerateBackendSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "Write a friendly email about: team offsite")
		assert.Contains(t, string(body), `"temperature":0.7`)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"text":"  Offsite details\n\nSee you there!  "}}]}`))
	}))
	defer server.Close()

	cfg := &config.Config{
		EmailAPIEnabled: true,
		EmailAPIKey:     "test-key",
		EmailAPIURL:     server.URL,
	}
	gen := NewClient(cfg, testLogger())

	content, subject := gen.Generate(context.Background(), "team offsite", "friendly")

	assert.Equal(t, "Offsite details\n\nSee you there!", content)
	assert.Equal(t, "Offsite details", subject)
}

func TestGenerateBackendErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg := &config.Config{
		EmailAPIEnabled: true,
		EmailAPIKey:     "test-key",
		EmailAPIURL:     server.URL,
	}
	gen := NewClient(cfg, testLogger())

	content, _ := gen.Generate(context.Background(), "renew license", "formal")

	assert.True(t, strings.HasPrefix(content, "Dear Sir/Madam,"))
}

func TestGenerateBackendEmptyCandidatesFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	cfg := &config.Config{
		EmailAPIEnabled: true,
		EmailAPIKey:     "test-key",
		EmailAPIURL:     server.URL,
	}
	gen := NewClient(cfg, testLogger())

	content, _ := gen.Generate(context.Background(), "renew license", "casual")

	assert.True(t, strings.HasPrefix(content, "Hi there,"))
}

func TestDeriveSubjectShortFirstLine(t *testing.T) {
	subject := deriveSubject("Quick update\n\nAll good here.", "ignored prompt")

	assert.Equal(t, "Quick update", subject)
}

func TestDeriveSubjectLongFirstLine(t *testing.T) {
	longLine := strings.Repeat("x", 80)
	prompt := "please renew the license for our team before the deadline next week thanks"

	subject := deriveSubject(longLine+"\nrest", prompt)

	// First seven words of the prompt, joined by single spaces.
	assert.Equal(t, "please renew the license for our team", subject)
}

func TestDeriveSubjectShortPrompt(t *testing.T) {
	longLine := strings.Repeat("y", 120)

	subject := deriveSubject(longLine, "two words")

	assert.Equal(t, "two words", subject)
}
