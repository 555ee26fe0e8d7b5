package libs

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestParseAnalysisStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"emotionalTone\":\"anxious\",\"primaryFocus\":\"emotional expression\",\"clinicalUrgency\":\"medium\",\"therapeuticNeed\":\"coping skills\",\"suggestedApproach\":\"mindfulness\"}\n```"

	a, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.EmotionalTone != "anxious" {
		t.Fatalf("emotionalTone = %q, want anxious", a.EmotionalTone)
	}
	if a.SuggestedApproach != "mindfulness" {
		t.Fatalf("suggestedApproach = %q, want mindfulness", a.SuggestedApproach)
	}
}

func TestParseAnalysisRejectsGarbage(t *testing.T) {
	if _, err := ParseAnalysis("I am not JSON at all"); err == nil {
		t.Fatal("expected error for non-JSON text")
	}
	if _, err := ParseAnalysis(""); err == nil {
		t.Fatal("expected error for empty text")
	}
	// Valid JSON missing required fields must also be rejected.
	if _, err := ParseAnalysis(`{"emotionalTone":"calm"}`); err == nil {
		t.Fatal("expected error for incomplete record")
	}
}

func TestAnalyzeMessageFallsBackOnGatewayError(t *testing.T) {
	log := zap.NewNop().Sugar()

	a := AnalyzeMessage(context.Background(), fakeGenerator{err: errGatewayDown}, "I feel anxious about work", 0, log)
	if a != DefaultAnalysis() {
		t.Fatalf("expected default analysis, got %+v", a)
	}
	// The default must never route to the crisis template.
	if a.ClinicalUrgency != "low" {
		t.Fatalf("default urgency = %q, want low", a.ClinicalUrgency)
	}
}

func TestAnalyzeMessageFallsBackOnUnparsableText(t *testing.T) {
	log := zap.NewNop().Sugar()

	a := AnalyzeMessage(context.Background(), fakeGenerator{out: "sorry, no JSON today"}, "hello", 3, log)
	if a != DefaultAnalysis() {
		t.Fatalf("expected default analysis, got %+v", a)
	}
}

func TestBuildAnalysisPromptPhasing(t *testing.T) {
	first := BuildAnalysisPrompt("hi", 0)
	if !strings.Contains(first, "initial engagement") {
		t.Fatalf("first-turn prompt missing initial engagement marker:\n%s", first)
	}
	later := BuildAnalysisPrompt("hi", 4)
	if !strings.Contains(later, "ongoing work") {
		t.Fatalf("later-turn prompt missing ongoing work marker:\n%s", later)
	}
	if !strings.Contains(later, `Client statement: "hi"`) {
		t.Fatal("prompt does not embed the client statement")
	}
}
