package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aurahealth/aura-backend/database"
	"github.com/aurahealth/aura-backend/libs"
	"github.com/aurahealth/aura-backend/model"
)

// Risk levels above this threshold are logged as warnings.
const riskAlertThreshold = 6

const sessionAnalysisPrompt = `Analyze this therapy message for emotional content and themes. Return ONLY valid JSON.

Message: "%s"
Recent Context: %s

Provide analysis in this exact JSON format:
{
  "emotionalState": "neutral|positive|negative|anxious|stressed|overwhelmed|happy|sad|angry",
  "themes": ["theme1", "theme2", "theme3"],
  "riskLevel": 0,
  "recommendedApproach": "supportive|exploratory|practical|coping|validation",
  "urgency": "low|medium|high"
}

Keep themes specific and concise. Risk level 0-10 where 0=normal, 10=crisis.`

const recommendationsPrompt = `Based on user context, generate personalized mental wellness activity recommendations.

User Context:
- Current mood score (0-10): %d
- Context: %s

Provide 3-4 personalized recommendations in this JSON format:
{
  "recommendations": [
    {
      "activity": "Activity name",
      "type": "mindfulness|physical|creative|social|cognitive",
      "duration": "5-15 minutes",
      "benefit": "Primary benefit",
      "description": "Brief how-to description",
      "difficulty": "easy|moderate|challenging"
    }
  ],
  "rationale": "Brief explanation of why these were chosen"
}

Focus on evidence-based activities that match current emotional needs.`

type sessionAnalysis struct {
	EmotionalState      string   `json:"emotionalState"`
	Themes              []string `json:"themes"`
	RiskLevel           int      `json:"riskLevel"`
	RecommendedApproach string   `json:"recommendedApproach"`
	Urgency             string   `json:"urgency"`
}

func defaultSessionAnalysis() sessionAnalysis {
	return sessionAnalysis{
		EmotionalState:      "neutral",
		Themes:              []string{},
		RiskLevel:           0,
		RecommendedApproach: "supportive",
		Urgency:             "low",
	}
}

var codeFenceRe = regexp.MustCompile("```json\n?|\n?```")

func parseSessionAnalysis(raw string) (sessionAnalysis, error) {
	cleaned := strings.TrimSpace(codeFenceRe.ReplaceAllString(raw, ""))
	if cleaned == "" {
		return sessionAnalysis{}, errors.New("empty analysis text")
	}
	var a sessionAnalysis
	if err := json.Unmarshal([]byte(cleaned), &a); err != nil {
		return sessionAnalysis{}, err
	}
	return a, nil
}

type recommendationPayload struct {
	Recommendations []model.RecommendedActivity `json:"recommendations"`
	Rationale       string                      `json:"rationale"`
}

func defaultRecommendations() recommendationPayload {
	return recommendationPayload{
		Recommendations: []model.RecommendedActivity{},
		Rationale:       "Unable to generate personalized recommendations at this time.",
	}
}

func parseRecommendations(raw string) (recommendationPayload, error) {
	cleaned := strings.TrimSpace(codeFenceRe.ReplaceAllString(raw, ""))
	if cleaned == "" {
		return recommendationPayload{}, errors.New("empty recommendations text")
	}
	var p recommendationPayload
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return recommendationPayload{}, err
	}
	return p, nil
}

func (w *Worker) analyzeSessionMessage(ctx context.Context, e Event) {
	prompt := fmt.Sprintf(sessionAnalysisPrompt, e.Message, libs.HistorySnippet(e.History))

	analysis := defaultSessionAnalysis()
	raw, err := w.gen.GenerateText(ctx, prompt)
	if err != nil {
		w.log.Warnw("session insight analysis failed, storing default", "sessionId", e.SessionID, "error", err)
	} else if parsed, perr := parseSessionAnalysis(raw); perr != nil {
		w.log.Warnw("could not parse session insight, storing default", "sessionId", e.SessionID, "error", perr)
	} else {
		analysis = parsed
	}

	if analysis.RiskLevel > riskAlertThreshold {
		w.log.Warnw("high risk level detected in chat message",
			"sessionId", e.SessionID,
			"riskLevel", analysis.RiskLevel,
			"emotionalState", analysis.EmotionalState,
		)
	}

	insight := model.SessionInsight{
		SessionID:           e.SessionID,
		UserID:              e.UserID,
		EmotionalState:      analysis.EmotionalState,
		Themes:              analysis.Themes,
		RiskLevel:           analysis.RiskLevel,
		RecommendedApproach: analysis.RecommendedApproach,
		Urgency:             analysis.Urgency,
		CreatedAt:           time.Now(),
	}
	if _, err := database.GetCollection(database.SessionInsights).InsertOne(ctx, insight); err != nil {
		w.log.Errorw("failed to store session insight", "sessionId", e.SessionID, "error", err)
		return
	}
	w.log.Infow("session insight stored", "sessionId", e.SessionID, "riskLevel", analysis.RiskLevel)
}

func (w *Worker) recommendActivities(ctx context.Context, e Event) {
	prompt := fmt.Sprintf(recommendationsPrompt, e.MoodScore, e.MoodContext)

	payload := defaultRecommendations()
	raw, err := w.gen.GenerateText(ctx, prompt)
	if err != nil {
		w.log.Warnw("recommendation generation failed, storing default", "error", err)
	} else if parsed, perr := parseRecommendations(raw); perr != nil {
		w.log.Warnw("could not parse recommendations, storing default", "error", perr)
	} else {
		payload = parsed
	}

	set := model.RecommendationSet{
		UserID:          e.UserID,
		MoodScore:       e.MoodScore,
		Context:         e.MoodContext,
		Recommendations: payload.Recommendations,
		Rationale:       payload.Rationale,
		CreatedAt:       time.Now(),
	}
	if _, err := database.GetCollection(database.Recommendations).InsertOne(ctx, set); err != nil {
		w.log.Errorw("failed to store recommendations", "error", err)
		return
	}
	w.log.Infow("activity recommendations stored", "count", len(payload.Recommendations))
}
