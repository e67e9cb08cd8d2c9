package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrNoAPIKey is returned when no Gemini API key is configured.
var ErrNoAPIKey = errors.New("no Gemini API key")

const systemInstruction = `You are a senior financial consultant advising small and medium
companies in Angola. You read a summary of one company's accounts for one
fiscal year, prepared under the Angolan general accounting plan (PGC), with
amounts in kwanza. Reply in Portuguese as written in Angola.`

// Prompt builds the request text for a summary.
func Prompt(summary string) string {
	var b strings.Builder
	b.WriteString("Analyse the following financial summary and give three to five concrete, ")
	b.WriteString("prioritised recommendations on liquidity, profitability and cost control. ")
	b.WriteString("Format the answer as a markdown bullet list.\n\n")
	b.WriteString(summary)
	return b.String()
}

// Gemini asks a Gemini model for advice.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini advisor.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Advise implements Advisor.
func (g *Gemini) Advise(ctx context.Context, summary string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(Prompt(summary)), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
	})
	if err != nil {
		return "", fmt.Errorf("generating advice with %s: %w", g.model, err)
	}
	return resp.Text(), nil
}
