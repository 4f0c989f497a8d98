package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"study-buddy/internal/config"
	"study-buddy/internal/usecase"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// GeminiClient implements the text-generation collaborator on Google's
// Gemini API. Every call is best-effort: the matching pipeline treats any
// error as a signal to use its template fallbacks.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *log.Logger
}

// NewGeminiClient returns nil when no API key is configured; a nil client
// makes the pipeline run on fallbacks only, mirroring how the cache degrades
// when redis is absent.
func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig, logger *log.Logger) (*GeminiClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = log.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &GeminiClient{client: client, model: model, timeout: timeout, logger: logger}, nil
}

var _ usecase.SuggestionClient = (*GeminiClient)(nil)

func (c *GeminiClient) GenerateActivities(ctx context.Context, requester usecase.LearningPatterns, candidate usecase.CandidateSummary, commonTopics []string) ([]string, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("suggestion client not configured")
	}

	prompt := activitiesPrompt(requester, candidate, commonTopics)
	raw, err := c.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("malformed activities response: %w", err)
	}
	if len(out) == 0 {
		return nil, errors.New("empty activities response")
	}
	return out, nil
}

func (c *GeminiClient) GenerateDiscussionTopics(ctx context.Context, patterns usecase.LearningPatterns, gaps []usecase.GapInput) ([]usecase.TopicSuggestion, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("suggestion client not configured")
	}

	prompt := topicsPrompt(patterns, gaps)
	raw, err := c.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var out []usecase.TopicSuggestion
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("malformed topics response: %w", err)
	}
	if len(out) == 0 {
		return nil, errors.New("empty topics response")
	}
	return out, nil
}

func (c *GeminiClient) generateJSON(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty gemini response")
	}
	return stripCodeFence(text), nil
}

func activitiesPrompt(requester usecase.LearningPatterns, candidate usecase.CandidateSummary, commonTopics []string) string {
	var b strings.Builder
	b.WriteString("Suggest up to 5 short study activities for a pair of study partners.\n")
	b.WriteString("Respond with a JSON array of strings only.\n\n")
	fmt.Fprintf(&b, "Requester subjects: %s\n", strings.Join(requester.Subjects, ", "))
	fmt.Fprintf(&b, "Requester study style: %s\n", orUnknown(requester.StudyStyle))
	fmt.Fprintf(&b, "Requester level: %s\n", orUnknown(requester.ExperienceLevel))
	fmt.Fprintf(&b, "Partner interests: %s\n", strings.Join(candidate.InterestTags, ", "))
	fmt.Fprintf(&b, "Partner study style: %s\n", orUnknown(candidate.StudyStyle))
	fmt.Fprintf(&b, "Partner level: %s\n", orUnknown(candidate.ExperienceLevel))
	fmt.Fprintf(&b, "Common topics: %s\n", strings.Join(commonTopics, ", "))
	return b.String()
}

func topicsPrompt(patterns usecase.LearningPatterns, gaps []usecase.GapInput) string {
	var b strings.Builder
	b.WriteString("Suggest discussion topics for a study group based on this learner.\n")
	b.WriteString(`Respond with a JSON array of {"topic": string, "reason": string} objects only.` + "\n\n")
	fmt.Fprintf(&b, "Subjects: %s\n", strings.Join(patterns.Subjects, ", "))
	fmt.Fprintf(&b, "Study style: %s\n", orUnknown(patterns.StudyStyle))
	fmt.Fprintf(&b, "Availability: %s\n", orUnknown(patterns.Availability))
	fmt.Fprintf(&b, "Level: %s\n", orUnknown(patterns.ExperienceLevel))
	if len(gaps) > 0 {
		b.WriteString("Weak areas (topic, confidence 0-1):\n")
		for _, g := range gaps {
			fmt.Fprintf(&b, "- %s: %.2f\n", g.Topic, g.Confidence)
		}
	}
	return b.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}

// stripCodeFence tolerates models that wrap JSON in a markdown fence despite
// the JSON response mime type.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
