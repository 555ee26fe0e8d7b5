package libs

import (
	"strings"
	"testing"

	"github.com/aurahealth/aura-backend/model"
)

func analysisWith(urgency, need, focus string) model.ClinicalAnalysis {
	return model.ClinicalAnalysis{
		EmotionalTone:     "anxious",
		PrimaryFocus:      focus,
		ClinicalUrgency:   urgency,
		TherapeuticNeed:   need,
		SuggestedApproach: "mindfulness",
	}
}

func TestSelectTemplateCrisisWinsFirst(t *testing.T) {
	// High urgency beats every other signal.
	a := analysisWith("high", "problem-solving", "emotional expression")
	prompt := SelectTemplate(a, "I can't cope anymore", nil)
	if !strings.Contains(prompt, "CLIENT DISTRESS SIGNAL") {
		t.Fatalf("expected crisis template, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, `"I can't cope anymore"`) {
		t.Fatal("crisis template missing client message")
	}
}

func TestSelectTemplateProblemSolving(t *testing.T) {
	a := analysisWith("low", "problem-solving", "practical concern")
	prompt := SelectTemplate(a, "I keep missing deadlines", nil)
	if !strings.Contains(prompt, "CLIENT CHALLENGE") {
		t.Fatalf("expected problem-solving template, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "mindfulness approach") {
		t.Fatal("problem-solving template missing response style")
	}
}

func TestSelectTemplateEmotionalExploration(t *testing.T) {
	a := analysisWith("medium", "validation", "emotional expression")
	prompt := SelectTemplate(a, "I feel empty", nil)
	if !strings.Contains(prompt, "CLIENT STATEMENT") {
		t.Fatalf("expected emotional template, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "anxious emotional tone") {
		t.Fatal("emotional template missing tone")
	}
}

func TestSelectTemplateDefaultAnalysisUsesEmotionalPath(t *testing.T) {
	// The fallback analysis has low urgency and an "emotional expression"
	// focus: it must not reach the crisis template.
	prompt := SelectTemplate(DefaultAnalysis(), "I feel anxious about work", nil)
	if strings.Contains(prompt, "CLIENT DISTRESS SIGNAL") {
		t.Fatal("default analysis must never select the crisis template")
	}
	if !strings.Contains(prompt, "CLIENT STATEMENT") {
		t.Fatalf("expected emotional-exploration template for default analysis, got:\n%s", prompt)
	}
}

func TestSelectTemplateGeneral(t *testing.T) {
	a := analysisWith("low", "validation", "self-reflection")
	prompt := SelectTemplate(a, "just checking in", nil)
	if !strings.Contains(prompt, "CLIENT:") || !strings.Contains(prompt, "CONVERSATION FLOW") {
		t.Fatalf("expected general template, got:\n%s", prompt)
	}
}

func TestHistorySnippet(t *testing.T) {
	if got := HistorySnippet(nil); got != NewConversationMarker {
		t.Fatalf("empty history snippet = %q, want %q", got, NewConversationMarker)
	}

	history := []model.ChatMessage{
		{Role: model.RoleUser, Content: "first"},
		{Role: model.RoleAssistant, Content: "second"},
		{Role: model.RoleUser, Content: "third"},
	}
	got := HistorySnippet(history)
	want := "assistant: second | user: third"
	if got != want {
		t.Fatalf("snippet = %q, want %q", got, want)
	}
}

func TestBuildFinalPromptWrapsPersona(t *testing.T) {
	prompt := BuildFinalPrompt("THERAPEUTIC CONTENT")
	if !strings.HasPrefix(prompt, "You are Dr. Maya") {
		t.Fatal("final prompt must start with the persona")
	}
	if !strings.Contains(prompt, "THERAPEUTIC CONTENT") {
		t.Fatal("final prompt must embed the selected template")
	}
	if !strings.Contains(prompt, "Remember: You are Dr. Maya") {
		t.Fatal("final prompt missing closing persona reminder")
	}
}
