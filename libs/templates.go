package libs

import (
	"fmt"
	"strings"

	"github.com/aurahealth/aura-backend/model"
)

// TherapistSystemPrompt is the fixed persona wrapped around every reply
// prompt. The 2-4 sentence constraint is enforced again by CleanResponse.
const TherapistSystemPrompt = `You are Dr. Maya, an experienced licensed clinical psychologist with 15 years of practice in cognitive-behavioral therapy, mindfulness-based approaches, and solution-focused therapy. You provide professional, empathetic, and clinically sound guidance.

**CORE THERAPEUTIC PRINCIPLES:**
- Practice active listening and reflective responses
- Use evidence-based techniques (CBT, DBT, mindfulness)
- Empower client autonomy and self-discovery
- Provide practical coping strategies
- Maintain professional boundaries while being warm
- Focus on client strengths and resources
- Help identify patterns and underlying needs

**COMMUNICATION STYLE:**
- Professional yet conversational
- Empathetic but not overly sentimental
- Specific and actionable insights
- Balanced validation with gentle challenge when helpful
- Uses therapeutic questions to promote insight
- Provides psychoeducation when relevant

**RESPONSE GUIDELINES:**
- Keep responses 2-4 sentences maximum
- Focus on one key therapeutic point per response
- Include at least one reflective element and one forward-looking element
- Use "you" language to maintain client focus
- Avoid jargon unless explaining it
- Balance validation with gentle guidance`

const TemplateEmotionalExploration = `CLIENT STATEMENT: "{message}"

CONVERSATION CONTEXT: {history}

ANALYSIS: Client shows {emotionalTone} emotional tone, focusing on {primaryFocus}

THERAPEUTIC APPROACH:
1. Reflect and validate the emotional experience
2. Explore the meaning or impact
3. Offer perspective or coping strategy
4. Gently guide toward insight or action

RESPONSE (2-4 sentences, professional therapist tone):`

const TemplateProblemSolving = `CLIENT CHALLENGE: "{message}"

CONTEXT: {history}

CLINICAL FOCUS: Practical problem-solving with {responseStyle} approach

THERAPEUTIC STRATEGY:
- Identify the core concern
- Explore existing coping attempts
- Suggest 1-2 evidence-based techniques
- Empower client's agency

CONCISE PROFESSIONAL RESPONSE:`

const TemplateCrisisSupport = `CLIENT DISTRESS SIGNAL: "{message}"

URGENCY LEVEL: {emotionalTone}

IMMEDIATE THERAPEUTIC PRIORITIES:
1. Ensure emotional safety and validation
2. Provide grounding if needed
3. Offer concrete support options
4. Maintain therapeutic connection

SUPPORTIVE PROFESSIONAL RESPONSE (calm, reassuring, practical):`

const TemplateGeneral = `CLIENT: "{message}"

CONVERSATION FLOW: {history}

As a professional therapist, provide a clinically appropriate response that:
- Validates the client's experience
- Offers psychological insight
- Suggests constructive perspective
- Maintains therapeutic alliance

Response (natural, professional, 2-3 sentences):`

// NewConversationMarker is rendered in place of a history snippet when the
// session has no prior turns.
const NewConversationMarker = "New conversation"

// HistorySnippet renders the two most recent messages as "role: content"
// joined by " | ".
func HistorySnippet(messages []model.ChatMessage) string {
	if len(messages) == 0 {
		return NewConversationMarker
	}
	recent := messages
	if len(recent) > 2 {
		recent = recent[len(recent)-2:]
	}
	parts := make([]string, 0, len(recent))
	for _, m := range recent {
		parts = append(parts, fmt.Sprintf("%s: %s", m.Role, m.Content))
	}
	return strings.Join(parts, " | ")
}

// SelectTemplate picks the therapeutic prompt for this turn. Priority order,
// first match wins: crisis, problem-solving, emotional exploration, general.
func SelectTemplate(analysis model.ClinicalAnalysis, message string, history []model.ChatMessage) string {
	snippet := HistorySnippet(history)

	switch {
	case analysis.ClinicalUrgency == "high":
		return strings.NewReplacer(
			"{message}", message,
			"{emotionalTone}", analysis.EmotionalTone,
		).Replace(TemplateCrisisSupport)

	case strings.Contains(analysis.TherapeuticNeed, "problem-solving"):
		return strings.NewReplacer(
			"{message}", message,
			"{history}", snippet,
			"{responseStyle}", analysis.SuggestedApproach,
		).Replace(TemplateProblemSolving)

	case strings.Contains(analysis.PrimaryFocus, "emotional"):
		return strings.NewReplacer(
			"{message}", message,
			"{history}", snippet,
			"{emotionalTone}", analysis.EmotionalTone,
			"{primaryFocus}", analysis.PrimaryFocus,
		).Replace(TemplateEmotionalExploration)

	default:
		return strings.NewReplacer(
			"{message}", message,
			"{history}", snippet,
		).Replace(TemplateGeneral)
	}
}

// BuildFinalPrompt wraps the selected template in the persona prompt.
func BuildFinalPrompt(therapeuticPrompt string) string {
	return TherapistSystemPrompt + "\n\n" + therapeuticPrompt +
		"\n\nRemember: You are Dr. Maya, a licensed psychologist. Respond with clinical expertise, empathy, and professional insight."
}
