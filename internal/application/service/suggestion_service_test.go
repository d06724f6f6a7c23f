package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cekapguard/agency-api/internal/ai"
	"github.com/cekapguard/agency-api/internal/domain/enum"
)

func TestPolicyNotesReturnsSuggestion(t *testing.T) {
	svc := NewSuggestionService(func(_ context.Context, _ enum.AssetType, _ enum.PolicyType) (string, error) {
		return "  Comprehensive cover subject to standard exclusions.  ", nil
	})

	note := svc.PolicyNotes(context.Background(), enum.AssetTypeMotor, enum.PolicyTypeComprehensive)
	assert.Equal(t, "Comprehensive cover subject to standard exclusions.", note)
}

func TestPolicyNotesFallsBackOnError(t *testing.T) {
	svc := NewSuggestionService(func(_ context.Context, _ enum.AssetType, _ enum.PolicyType) (string, error) {
		return "", errors.New("upstream unavailable")
	})

	note := svc.PolicyNotes(context.Background(), enum.AssetTypeMotor, enum.PolicyTypeThirdParty)
	assert.Equal(t, ai.FallbackNote, note)
}

func TestPolicyNotesFallsBackOnEmptyAnswer(t *testing.T) {
	svc := NewSuggestionService(func(_ context.Context, _ enum.AssetType, _ enum.PolicyType) (string, error) {
		return "   ", nil
	})

	note := svc.PolicyNotes(context.Background(), enum.AssetTypeOthers, "")
	assert.Equal(t, ai.FallbackNote, note)
}
