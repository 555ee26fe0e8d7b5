package libs

import (
	"strings"
	"testing"

	"github.com/aurahealth/aura-backend/model"
)

func msg(content string) model.ChatMessage {
	return model.ChatMessage{Role: model.RoleUser, Content: content}
}

func TestExtractThemesMatchesTaxonomy(t *testing.T) {
	themes := ExtractThemes([]model.ChatMessage{
		msg("My anxiety spikes when work collides with family time."),
	})

	want := map[string]bool{"anxiety": true, "work": true, "family": true}
	for _, th := range themes {
		delete(want, th)
	}
	if len(want) != 0 {
		t.Fatalf("missing expected themes %v in %v", want, themes)
	}
}

func TestExtractThemesSuffixForms(t *testing.T) {
	// "overworking" contains "work"; "stressed" contains "stress".
	themes := ExtractThemes([]model.ChatMessage{msg("I've been overworking and feel stressed")})

	found := map[string]bool{}
	for _, th := range themes {
		found[th] = true
	}
	if !found["work"] || !found["stress"] {
		t.Fatalf("expected work and stress, got %v", themes)
	}
}

func TestExtractThemesCapAndShape(t *testing.T) {
	themes := ExtractThemes([]model.ChatMessage{
		msg("anxiety depression anger fear sadness happiness joy frustration overwhelm calm"),
	})
	if len(themes) != MaxThemes {
		t.Fatalf("expected exactly %d themes, got %d: %v", MaxThemes, len(themes), themes)
	}
	for _, th := range themes {
		if th == "" || th != strings.ToLower(th) {
			t.Fatalf("themes must be lowercase and non-empty, got %q", th)
		}
		if !InTaxonomy(th) {
			t.Fatalf("theme %q not in taxonomy", th)
		}
	}
}

func TestExtractThemesMergesMetadata(t *testing.T) {
	tagged := model.ChatMessage{
		Role:    model.RoleAssistant,
		Content: "let's revisit that",
		Metadata: &model.MessageMetadata{
			Themes: []string{" Burnout ", "anxiety"},
		},
	}
	themes := ExtractThemes([]model.ChatMessage{tagged, msg("my anxiety again")})

	found := map[string]int{}
	for _, th := range themes {
		found[th]++
	}
	if found["burnout"] != 1 {
		t.Fatalf("metadata theme not merged lowercase/trimmed: %v", themes)
	}
	if found["anxiety"] != 1 {
		t.Fatalf("themes not deduplicated: %v", themes)
	}
}

func TestExtractThemesEmptyInput(t *testing.T) {
	if themes := ExtractThemes(nil); len(themes) != 0 {
		t.Fatalf("expected no themes for empty input, got %v", themes)
	}
}
