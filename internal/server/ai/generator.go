package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-3-flash-preview"

type Source struct {
	Title string
	URI   string
}

type DeepDive struct {
	Text    string
	Sources []Source
}

// Generator is the raw model interface. Implementations return errors;
// Assistant turns them into fallbacks.
type Generator interface {
	Takeaway(ctx context.Context, content string) (string, error)
	Suggestions(ctx context.Context, topic, category string) ([]string, error)
	DeepDive(ctx context.Context, topic string) (*DeepDive, error)
}

// contentGenerator is the subset of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini implements Generator on top of the Gemini API.
type Gemini struct {
	models contentGenerator
	model  string
}

var errEmptyResponse = errors.New("empty response")

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{models: client.Models, model: model}, nil
}

func (g *Gemini) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errEmptyResponse
	}
	return resp, nil
}

func (g *Gemini) Takeaway(ctx context.Context, content string) (string, error) {
	prompt := "Please summarize the following learning content into a concise (max 200 characters) " +
		"\"Key Takeaway\" for a developer journal:\n\n" + content

	resp, err := g.generate(ctx, prompt, &genai.GenerateContentConfig{
		MaxOutputTokens: 400,
		Temperature:     genai.Ptr[float32](0.7),
		ThinkingConfig:  &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](100)},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}

func (g *Gemini) Suggestions(ctx context.Context, topic, category string) ([]string, error) {
	prompt := fmt.Sprintf("I just learned about \"%s\" in the category of \"%s\". Suggest 3 related advanced topics I should study next.",
		topic, category)

	resp, err := g.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	})
	if err != nil {
		return nil, err
	}
	return parseSuggestions(resp.Text())
}

func parseSuggestions(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("decoding suggestions: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func (g *Gemini) DeepDive(ctx context.Context, topic string) (*DeepDive, error) {
	prompt := fmt.Sprintf("Provide a technical deep dive and latest best practices for \"%s\". "+
		"Focus on implementation details for a senior engineer.", topic)

	resp, err := g.generate(ctx, prompt, &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		return nil, err
	}
	return &DeepDive{Text: strings.TrimSpace(resp.Text()), Sources: groundingSources(resp)}, nil
}

// groundingSources collects web citations from the first candidate. Chunks
// without a URI are dropped and a missing title becomes "Resource".
func groundingSources(resp *genai.GenerateContentResponse) []Source {
	out := []Source{}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].GroundingMetadata == nil {
		return out
	}
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = "Resource"
		}
		out = append(out, Source{Title: title, URI: chunk.Web.URI})
	}
	return out
}
