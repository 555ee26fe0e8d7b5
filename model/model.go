package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID        bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email     string        `json:"email" bson:"email"`
	Password  string        `json:"-" bson:"password"`
	Name      string        `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updated_at"`
}

// MoodEntry is append-only: entries are never updated or deleted.
type MoodEntry struct {
	ID         bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID     bson.ObjectID `json:"userId" bson:"user_id"`
	Score      int           `json:"score" bson:"score"`
	Note       string        `json:"note,omitempty" bson:"note,omitempty"`
	Context    string        `json:"context,omitempty" bson:"context,omitempty"`
	Activities []string      `json:"activities,omitempty" bson:"activities,omitempty"`
	Timestamp  time.Time     `json:"timestamp" bson:"timestamp"`
}

const (
	ActivityStatusScheduled = "scheduled"
	ActivityStatusCompleted = "completed"
	ActivityStatusCancelled = "cancelled"
)

var ActivityTypes = []string{
	"meditation", "exercise", "therapy", "journaling", "breathing", "mindfulness", "other",
}

func ValidActivityType(t string) bool {
	for _, v := range ActivityTypes {
		if v == t {
			return true
		}
	}
	return false
}

func ValidActivityStatus(s string) bool {
	return s == ActivityStatusScheduled || s == ActivityStatusCompleted || s == ActivityStatusCancelled
}

type Activity struct {
	ID           bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID       bson.ObjectID `json:"userId" bson:"user_id"`
	Type         string        `json:"type" bson:"type"`
	Name         string        `json:"name" bson:"name"`
	Description  string        `json:"description,omitempty" bson:"description,omitempty"`
	Duration     int           `json:"duration,omitempty" bson:"duration,omitempty"`     // minutes
	Difficulty   int           `json:"difficulty,omitempty" bson:"difficulty,omitempty"` // 1-10
	Feedback     string        `json:"feedback,omitempty" bson:"feedback,omitempty"`
	ScheduledFor *time.Time    `json:"scheduledFor,omitempty" bson:"scheduled_for,omitempty"`
	Timestamp    time.Time     `json:"timestamp" bson:"timestamp"`
	Status       string        `json:"status" bson:"status"`
}

const (
	SessionStatusActive   = "active"
	SessionStatusInactive = "inactive"
	SessionStatusClosed   = "closed"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ClinicalAnalysis is the per-turn judgment produced by the model, or the
// deterministic default when the model is unavailable or returns garbage.
type ClinicalAnalysis struct {
	EmotionalTone     string `json:"emotionalTone" bson:"emotional_tone"`
	PrimaryFocus      string `json:"primaryFocus" bson:"primary_focus"`
	ClinicalUrgency   string `json:"clinicalUrgency" bson:"clinical_urgency"`
	TherapeuticNeed   string `json:"therapeuticNeed" bson:"therapeutic_need"`
	SuggestedApproach string `json:"suggestedApproach" bson:"suggested_approach"`
}

type MessageMetadata struct {
	ClinicalAnalysis    *ClinicalAnalysis `json:"clinicalAnalysis,omitempty" bson:"clinical_analysis,omitempty"`
	TherapeuticApproach string            `json:"therapeuticApproach,omitempty" bson:"therapeutic_approach,omitempty"`
	FocusArea           string            `json:"focusArea,omitempty" bson:"focus_area,omitempty"`
	ResponseStyle       string            `json:"responseStyle,omitempty" bson:"response_style,omitempty"`
	Themes              []string          `json:"themes,omitempty" bson:"themes,omitempty"`
}

// ChatMessage is immutable once appended; ordering within a session is
// insertion order.
type ChatMessage struct {
	Role      string           `json:"role" bson:"role"`
	Content   string           `json:"content" bson:"content"`
	Timestamp time.Time        `json:"timestamp" bson:"timestamp"`
	Metadata  *MessageMetadata `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

type ChatSession struct {
	ID        bson.ObjectID `json:"-" bson:"_id,omitempty"`
	SessionID string        `json:"sessionId" bson:"session_id"`
	UserID    bson.ObjectID `json:"userId,omitempty" bson:"user_id,omitempty"`
	Messages  []ChatMessage `json:"messages" bson:"messages"`
	StartTime time.Time     `json:"startTime" bson:"start_time"`
	Status    string        `json:"status" bson:"status"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updated_at"`
}

// SessionInsight is the background worker's per-turn analysis. It is derived
// data for trend views and never feeds back into the reply pipeline.
type SessionInsight struct {
	ID                  bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	SessionID           string        `json:"sessionId" bson:"session_id"`
	UserID              bson.ObjectID `json:"userId" bson:"user_id"`
	EmotionalState      string        `json:"emotionalState" bson:"emotional_state"`
	Themes              []string      `json:"themes" bson:"themes"`
	RiskLevel           int           `json:"riskLevel" bson:"risk_level"` // 0-10, 10 = crisis
	RecommendedApproach string        `json:"recommendedApproach" bson:"recommended_approach"`
	Urgency             string        `json:"urgency" bson:"urgency"`
	CreatedAt           time.Time     `json:"createdAt" bson:"created_at"`
}

type RecommendedActivity struct {
	Activity    string `json:"activity" bson:"activity"`
	Type        string `json:"type" bson:"type"`
	Duration    string `json:"duration" bson:"duration"`
	Benefit     string `json:"benefit" bson:"benefit"`
	Description string `json:"description" bson:"description"`
	Difficulty  string `json:"difficulty" bson:"difficulty"`
}

type RecommendationSet struct {
	ID              bson.ObjectID         `json:"_id" bson:"_id,omitempty"`
	UserID          bson.ObjectID         `json:"userId" bson:"user_id"`
	MoodScore       int                   `json:"moodScore" bson:"mood_score"`
	Context         string                `json:"context,omitempty" bson:"context,omitempty"`
	Recommendations []RecommendedActivity `json:"recommendations" bson:"recommendations"`
	Rationale       string                `json:"rationale" bson:"rationale"`
	CreatedAt       time.Time             `json:"createdAt" bson:"created_at"`
}
