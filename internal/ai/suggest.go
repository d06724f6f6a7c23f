// Package ai wraps the Gemini client used for policy note suggestions.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/cekapguard/agency-api/internal/domain/enum"
)

// FallbackNote is returned whenever the suggestion service fails or
// comes back empty. Callers must never see an error from this package.
const FallbackNote = "Standard policy terms apply."

// Suggester generates short policy remarks via Gemini.
type Suggester struct {
	apiKey string
	model  string
}

// NewSuggester creates a suggester. An empty API key is allowed; every
// call then degrades to the fallback note.
func NewSuggester(apiKey, model string) *Suggester {
	if model == "" {
		model = "gemini-2.0-flash-001"
	}
	return &Suggester{apiKey: apiKey, model: model}
}

// SuggestPolicyNotes returns a short professional remark for the given
// asset and policy type, or an error the caller should swallow in
// favour of FallbackNote.
func (s *Suggester) SuggestPolicyNotes(ctx context.Context, assetType enum.AssetType, policyType enum.PolicyType) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("gemini api key not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel(s.model)

	var prompt string
	if assetType == enum.AssetTypeOthers {
		prompt = "Generate a short, professional remark (max 20 words) for a project insurance policy. Make it sound like an official policy note."
	} else {
		prompt = fmt.Sprintf("Generate a short, professional remark (max 20 words) for a motor insurance %s policy. Make it sound like an official policy note.", policyType)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
