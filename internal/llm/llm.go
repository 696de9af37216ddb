package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kevinmichaelchen/showcase/internal/models"
	openai "github.com/sashabaranov/go-openai"
)

type Client struct {
	client *openai.Client
	model  string
}

func NewClient(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

const systemPrompt = `You write copy for a developer's portfolio site. Given a project's title, category, technologies, description, and README excerpt, produce a JSON object with:

"summary": 2-3 sentences, written for a recruiter, saying what the project does and what is technically interesting about it. Do not invent features that are not mentioned.

Return ONLY valid JSON. No markdown, no code fences.`

// Prompt builds the user message describing a project.
func Prompt(p models.Project, readme string) string {
	parts := []string{
		fmt.Sprintf("Project: %s", p.Title),
		fmt.Sprintf("Category: %s", p.Category),
	}
	if len(p.Technologies) > 0 {
		parts = append(parts, fmt.Sprintf("Technologies: %s", strings.Join(p.Technologies, ", ")))
	}
	if p.Description != "" {
		parts = append(parts, fmt.Sprintf("Description: %s", p.Description))
	}
	if readme = strings.TrimSpace(readme); readme != "" {
		parts = append(parts, fmt.Sprintf("README excerpt:\n%s", readme))
	}
	return strings.Join(parts, "\n\n")
}

func (c *Client) Summarize(ctx context.Context, p models.Project, readme string) (*models.SummaryResult, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: Prompt(p, readme)},
		},
		// Not every compatible endpoint supports json_object mode.
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM call for %s: %w", p.Name, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned for %s", p.Name)
	}
	return ParseSummary(resp.Choices[0].Message.Content)
}

// ParseSummary decodes a model reply, tolerating markdown code fences.
func ParseSummary(content string) (*models.SummaryResult, error) {
	content = stripCodeFences(content)

	var result models.SummaryResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("parsing LLM response: %w\nraw: %s", err, content)
	}
	if strings.TrimSpace(result.Summary) == "" {
		return nil, fmt.Errorf("empty summary in LLM response")
	}
	return &result, nil
}

// stripCodeFences removes markdown code fences that some models wrap around JSON.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i != -1 {
			s = s[i+1:]
		}
		if i := strings.LastIndex(s, "```"); i != -1 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	return s
}
