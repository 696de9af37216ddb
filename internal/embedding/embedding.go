package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kevinmichaelchen/showcase/internal/models"
	openai "github.com/sashabaranov/go-openai"
)

type Client struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewClient(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.EmbeddingModel(model),
	}
}

const maxBatchSize = 256

// ProjectText is the text embedded for a project.
func ProjectText(p models.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)", p.Title, p.Category)
	if p.Description != "" {
		b.WriteString(": " + p.Description)
	}
	if len(p.Technologies) > 0 {
		b.WriteString(". Built with " + strings.Join(p.Technologies, ", "))
	}
	if p.AISummary != nil {
		b.WriteString(". " + *p.AISummary)
	}
	return b.String()
}

func (c *Client) EmbedProjects(ctx context.Context, list []models.Project) ([][]float32, error) {
	texts := make([]string, len(list))
	for i, p := range list {
		texts[i] = ProjectText(p)
	}
	return c.Embed(ctx, texts)
}

func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, len(texts))
	for start := 0; start < len(texts); start += maxBatchSize {
		end := min(start+maxBatchSize, len(texts))

		resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: texts[start:end],
			Model: c.model,
		})
		if err != nil {
			return nil, fmt.Errorf("creating embeddings (batch %d-%d): %w", start, end, err)
		}
		for _, emb := range resp.Data {
			if emb.Index < 0 || start+emb.Index >= end {
				return nil, fmt.Errorf("embedding index %d out of batch %d-%d", emb.Index, start, end)
			}
			vectors[start+emb.Index] = emb.Embedding
		}
	}
	return vectors, nil
}

func (c *Client) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 || vecs[0] == nil {
		return nil, errors.New("no embedding returned")
	}
	return vecs[0], nil
}
