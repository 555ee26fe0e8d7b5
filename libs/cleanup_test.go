package libs

import (
	"strings"
	"testing"

	"github.com/aurahealth/aura-backend/model"
)

func neutralAnalysis() model.ClinicalAnalysis {
	return DefaultAnalysis()
}

func TestCleanResponseStripsOpeners(t *testing.T) {
	got := CleanResponse("Okay, that sounds really hard. What would help right now?", neutralAnalysis())
	want := "That sounds really hard. What would help right now?"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCleanResponseStripsJargon(t *testing.T) {
	got := CleanResponse("As your therapist, I want you to notice this pattern.", neutralAnalysis())
	if strings.Contains(got, "As your therapist") {
		t.Fatalf("jargon survived cleanup: %q", got)
	}
	if !strings.HasPrefix(got, "I want you") {
		t.Fatalf("unexpected cleanup result: %q", got)
	}
}

func TestCleanResponseCapitalizesFirstLetter(t *testing.T) {
	got := CleanResponse("you deserve rest.", neutralAnalysis())
	if !strings.HasPrefix(got, "You") {
		t.Fatalf("first letter not capitalized: %q", got)
	}
}

func TestCleanResponseTruncatesLongReplies(t *testing.T) {
	got := CleanResponse("One thing. Two things. Three things. Four things. Five things.", neutralAnalysis())
	want := "One thing. Two things. Three things."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// Exactly four sentences are left alone.
	four := "One. Two. Three. Four."
	if got := CleanResponse(four, neutralAnalysis()); got != four {
		t.Fatalf("four sentences should be untouched, got %q", got)
	}
}

func TestCleanResponseAnxiousToneEndsWithPeriod(t *testing.T) {
	a := neutralAnalysis()
	a.EmotionalTone = "anxious"
	got := CleanResponse("You are safe here", a)
	if !strings.HasSuffix(got, ".") {
		t.Fatalf("anxious-tone reply must end with a period: %q", got)
	}
}

func TestCleanResponseIdempotent(t *testing.T) {
	inputs := []string{
		"Okay, that sounds really hard. What would help right now?",
		"I hear you, this has been weighing on you, which is completely normal. Let's look at one step.",
		"you deserve rest.",
		"One thing. Two things. Three things. Four things. Five things.",
		"As your therapist, In my professional opinion, you are making progress.",
		"",
	}
	for _, in := range inputs {
		for _, a := range []model.ClinicalAnalysis{neutralAnalysis(), {EmotionalTone: "anxious"}} {
			once := CleanResponse(in, a)
			twice := CleanResponse(once, a)
			if once != twice {
				t.Fatalf("cleanup not idempotent for %q: first %q, second %q", in, once, twice)
			}
		}
	}
}
