package libs

import (
	"regexp"
	"strings"

	"github.com/aurahealth/aura-backend/model"
)

// Throat-clearing openers and therapist jargon stripped from raw model
// output before it reaches the client.
var cleanupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(Okay, |Alright, |I understand, |That's completely understandable, |I hear you, |I appreciate you sharing that, |Thank you for sharing, )`),
	regexp.MustCompile(`(?i)(which is completely (normal|understandable|natural))\.?`),
	regexp.MustCompile(`(?i)(it's (completely|totally) (normal|understandable|natural)) to feel that way\.?`),
	regexp.MustCompile(`(?i)It sounds like you're (feeling|experiencing|dealing with)`),
	regexp.MustCompile(`(?i)Based on what you've shared,`),
	regexp.MustCompile(`(?i)Given our previous discussion,`),
	regexp.MustCompile(`(?i)Let me (offer|provide) some (thoughts|perspective|guidance)`),
	regexp.MustCompile(`(?i)As your therapist,`),
	regexp.MustCompile(`(?i)In my professional opinion,`),
}

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	leadingLowerRe  = regexp.MustCompile(`^[a-z]`)
)

// CleanResponse post-processes raw model text: strips the fixed phrase list,
// capitalizes the first letter, and truncates to three sentences when more
// than four are present. It is a pure string transform and idempotent:
// passes are applied until a fixed point, which exists because every pass
// either shortens the text or leaves it unchanged.
func CleanResponse(raw string, analysis model.ClinicalAnalysis) string {
	prev := raw
	for {
		next := cleanOnce(prev, analysis)
		if next == prev {
			return next
		}
		prev = next
	}
}

func cleanOnce(s string, analysis model.ClinicalAnalysis) string {
	out := s
	for _, re := range cleanupPatterns {
		out = re.ReplaceAllString(out, "")
	}
	out = strings.TrimSpace(out)
	out = leadingLowerRe.ReplaceAllStringFunc(out, strings.ToUpper)

	sentences := splitSentences(out)
	if len(sentences) > 4 {
		out = strings.Join(sentences[:3], ". ") + "."
	}

	// Distressed tones always get a firm closing period.
	if analysis.EmotionalTone == "anxious" || analysis.EmotionalTone == "negative" {
		if out != "" && !strings.HasSuffix(out, ".") {
			out += "."
		}
	}
	return out
}

func splitSentences(s string) []string {
	parts := sentenceSplitRe.Split(s, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			sentences = append(sentences, t)
		}
	}
	return sentences
}
