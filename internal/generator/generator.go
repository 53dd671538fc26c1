package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"instamailer/internal/config"
	"instamailer/internal/logger"
	"instamailer/internal/service"
)

// generationTimeout bounds the backend call; on expiry the fallback applies.
const generationTimeout = 30 * time.Second

// subjectMaxRunes is the first-line length under which the line itself becomes
// the subject; at or above it the subject falls back to the prompt's first
// subjectPromptWords words.
const (
	subjectMaxRunes    = 80
	subjectPromptWords = 7
)

type generatorClient struct {
	cfg        *config.Config
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(cfg *config.Config, logger *logger.Logger) service.ContentGenerator {
	return &generatorClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: generationTimeout,
		},
		logger: logger,
	}
}

// Generation backend request/response structures
type generationRequest struct {
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
}

type generationResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content candidateContent `json:"content"`
}

type candidateContent struct {
	Text string `json:"text"`
}

func (g *generatorClient) Generate(ctx context.Context, prompt, tone string) (string, string) {
	content := g.fetchContent(ctx, prompt, tone)
	if content == "" {
		content = fallbackContent(prompt, tone)
	}

	return content, deriveSubject(content, prompt)
}

// fetchContent calls the generation backend and returns "" on any failure:
// missing configuration, transport error, non-success status, and a malformed
// or empty body are all treated identically.
func (g *generatorClient) fetchContent(ctx context.Context, prompt, tone string) string {
	if !g.cfg.EmailAPIReady() {
		g.logger.Warn("Email API not configured, using fallback")
		return ""
	}

	request := generationRequest{
		Prompt:      fmt.Sprintf("Write a %s email about: %s", tone, prompt),
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		g.logger.Error("Failed to marshal generation request:", err)
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.cfg.EmailAPIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		g.logger.Error("Failed to create generation request:", err)
		return ""
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.EmailAPIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Error("Generation API error:", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		g.logger.Errorf("Generation API request failed with status %d: %s", resp.StatusCode, string(body))
		return ""
	}

	var genResp generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		g.logger.Error("Failed to decode generation response:", err)
		return ""
	}

	if len(genResp.Candidates) == 0 {
		g.logger.Warn("No content returned from generation API")
		return ""
	}

	return strings.TrimSpace(genResp.Candidates[0].Content.Text)
}

// fallbackContent builds the templated draft used whenever the backend yields
// no usable text.
func fallbackContent(prompt, tone string) string {
	greeting := "Dear Sir/Madam,"
	closing := "Best regards,\n[Your Name]"
	switch strings.ToLower(tone) {
	case "friendly", "casual":
		greeting = "Hi there,"
		closing = "Best,\n[Your Name]"
	}
	return fmt.Sprintf("%s\n\n%s\n\n%s", greeting, prompt, closing)
}

// deriveSubject uses the first content line when it is short enough, otherwise
// the leading words of the original prompt.
func deriveSubject(content, prompt string) string {
	firstLine := strings.SplitN(strings.TrimSpace(content), "\n", 2)[0]
	if utf8.RuneCountInString(firstLine) < subjectMaxRunes {
		return firstLine
	}

	words := strings.Fields(prompt)
	if len(words) > subjectPromptWords {
		words = words[:subjectPromptWords]
	}
	return strings.Join(words, " ")
}
