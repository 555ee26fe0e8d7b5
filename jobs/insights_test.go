package jobs

import (
	"testing"
)

func TestParseSessionAnalysisStripsFences(t *testing.T) {
	raw := "```json\n{\"emotionalState\":\"anxious\",\"themes\":[\"work\",\"sleep\"],\"riskLevel\":3,\"recommendedApproach\":\"coping\",\"urgency\":\"medium\"}\n```"

	a, err := parseSessionAnalysis(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.EmotionalState != "anxious" || a.RiskLevel != 3 {
		t.Fatalf("unexpected analysis: %+v", a)
	}
	if len(a.Themes) != 2 {
		t.Fatalf("expected 2 themes, got %v", a.Themes)
	}
}

func TestParseSessionAnalysisRejectsGarbage(t *testing.T) {
	if _, err := parseSessionAnalysis("no json here"); err == nil {
		t.Fatal("expected error for non-JSON text")
	}
	if _, err := parseSessionAnalysis(""); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestDefaultSessionAnalysisIsCalm(t *testing.T) {
	a := defaultSessionAnalysis()
	if a.EmotionalState != "neutral" || a.RiskLevel != 0 || a.Urgency != "low" {
		t.Fatalf("default must be the calm baseline: %+v", a)
	}
	if a.RiskLevel > riskAlertThreshold {
		t.Fatal("default risk level must never trigger an alert")
	}
}

func TestParseRecommendations(t *testing.T) {
	raw := `{"recommendations":[{"activity":"Box breathing","type":"mindfulness","duration":"5-15 minutes","benefit":"Calms the nervous system","description":"Breathe in 4, hold 4, out 4, hold 4","difficulty":"easy"}],"rationale":"Matches a stressed mood."}`

	p, err := parseRecommendations(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Recommendations) != 1 || p.Recommendations[0].Activity != "Box breathing" {
		t.Fatalf("unexpected payload: %+v", p)
	}
}

func TestParseRecommendationsFallback(t *testing.T) {
	if _, err := parseRecommendations("sorry, I cannot help"); err == nil {
		t.Fatal("expected error for non-JSON text")
	}
	def := defaultRecommendations()
	if len(def.Recommendations) != 0 || def.Rationale == "" {
		t.Fatalf("unexpected default payload: %+v", def)
	}
}
