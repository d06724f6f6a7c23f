package service

import (
	"context"
	"strings"

	"github.com/cekapguard/agency-api/internal/ai"
	"github.com/cekapguard/agency-api/internal/domain/enum"
)

// SuggestFunc produces a policy note suggestion for an asset and
// policy type.
type SuggestFunc func(ctx context.Context, assetType enum.AssetType, policyType enum.PolicyType) (string, error)

// SuggestionService wraps the text-suggestion collaborator. It is
// strictly best-effort: any failure or empty answer degrades to the
// static fallback note, never to an error.
type SuggestionService struct {
	suggest SuggestFunc
}

// NewSuggestionService creates a suggestion service backed by the given
// function, usually (*ai.Suggester).SuggestPolicyNotes.
func NewSuggestionService(suggest SuggestFunc) *SuggestionService {
	return &SuggestionService{suggest: suggest}
}

// PolicyNotes returns a suggested insurance-details note. It cannot
// fail.
func (s *SuggestionService) PolicyNotes(ctx context.Context, assetType enum.AssetType, policyType enum.PolicyType) string {
	note, err := s.suggest(ctx, assetType, policyType)
	if err != nil || strings.TrimSpace(note) == "" {
		return ai.FallbackNote
	}
	return strings.TrimSpace(note)
}
