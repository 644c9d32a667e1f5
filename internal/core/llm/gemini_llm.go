package llm

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/docglot/docglot/internal/core"
)

type GeminiLLM struct {
	client    *genai.Client
	modelName string
}

// NewGeminiLLM dials the Gemini API. The key comes from configuration; there
// is no ambient environment fallback here.
func NewGeminiLLM(ctx context.Context, apiKey, modelName string) (*GeminiLLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiLLM{client: cl, modelName: modelName}, nil
}

func (g *GeminiLLM) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Stream opens one streaming generation call and adapts the response
// iterator to a FragmentStream.
func (g *GeminiLLM) Stream(ctx context.Context, req core.StreamRequest) (core.FragmentStream, error) {
	m := g.client.GenerativeModel(g.modelName)
	if req.SystemPrompt != "" {
		m.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.SystemPrompt)},
		}
	}
	m.SetTemperature(req.Temperature)

	return &geminiStream{iter: m.GenerateContentStream(ctx, genai.Text(req.Instruction))}, nil
}

type geminiStream struct {
	iter *genai.GenerateContentResponseIterator
}

// Recv returns the next non-empty text fragment. Responses without text
// (safety annotations, keep-alives) are skipped rather than surfaced as
// empty fragments.
func (s *geminiStream) Recv() (string, error) {
	for {
		resp, err := s.iter.Next()
		if err == iterator.Done {
			return "", io.EOF
		}
		if err != nil {
			return "", fmt.Errorf("gemini stream: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range resp.Candidates[0].Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if b.Len() == 0 {
			continue
		}
		return b.String(), nil
	}
}

var _ core.StreamProvider = (*GeminiLLM)(nil)
