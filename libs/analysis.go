package libs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aurahealth/aura-backend/model"
	"go.uber.org/zap"
)

const analysisPromptTemplate = `As a clinical supervisor, analyze this therapy session moment.

Client statement: "%s"
Session history: %d messages, %s

Provide BRIEF clinical analysis in JSON:
{
  "emotionalTone": "calm|anxious|depressed|angry|mixed|neutral|positive",
  "primaryFocus": "emotional expression|problem description|relationship issue|self-reflection|crisis|practical concern",
  "clinicalUrgency": "low|medium|high",
  "therapeuticNeed": "validation|coping skills|problem-solving|insight development|crisis support",
  "suggestedApproach": "supportive listening|CBT techniques|mindfulness|solution-focused|grounding exercises"
}`

// DefaultAnalysis is the deterministic record used whenever the gateway
// fails or returns something unparsable. It must never select the crisis
// path: urgency stays low.
func DefaultAnalysis() model.ClinicalAnalysis {
	return model.ClinicalAnalysis{
		EmotionalTone:     "neutral",
		PrimaryFocus:      "emotional expression",
		ClinicalUrgency:   "low",
		TherapeuticNeed:   "validation",
		SuggestedApproach: "supportive listening",
	}
}

func BuildAnalysisPrompt(message string, historyLen int) string {
	phase := "initial engagement"
	if historyLen > 0 {
		phase = "ongoing work"
	}
	return fmt.Sprintf(analysisPromptTemplate, message, historyLen, phase)
}

var codeFenceRe = regexp.MustCompile("```json\n?|\n?```")

// ParseAnalysis strips markdown code fences and decodes the model's JSON.
// A record missing any field is rejected so template selection never runs
// on empty strings.
func ParseAnalysis(raw string) (model.ClinicalAnalysis, error) {
	cleaned := strings.TrimSpace(codeFenceRe.ReplaceAllString(raw, ""))
	if cleaned == "" {
		return model.ClinicalAnalysis{}, errors.New("empty analysis text")
	}

	var a model.ClinicalAnalysis
	if err := json.Unmarshal([]byte(cleaned), &a); err != nil {
		return model.ClinicalAnalysis{}, err
	}
	if a.EmotionalTone == "" || a.PrimaryFocus == "" || a.ClinicalUrgency == "" ||
		a.TherapeuticNeed == "" || a.SuggestedApproach == "" {
		return model.ClinicalAnalysis{}, errors.New("analysis record is missing required fields")
	}
	return a, nil
}

// AnalyzeMessage runs the clinical-analysis stage. It never fails: any
// gateway or parse error degrades to DefaultAnalysis.
func AnalyzeMessage(ctx context.Context, gen Generator, message string, historyLen int, log *zap.SugaredLogger) model.ClinicalAnalysis {
	raw, err := gen.GenerateText(ctx, BuildAnalysisPrompt(message, historyLen))
	if err != nil {
		log.Warnw("clinical analysis failed, using default", "error", err)
		return DefaultAnalysis()
	}

	analysis, err := ParseAnalysis(raw)
	if err != nil {
		log.Warnw("could not parse clinical analysis, using default", "error", err)
		return DefaultAnalysis()
	}
	return analysis
}
