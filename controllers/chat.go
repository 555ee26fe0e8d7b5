package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aurahealth/aura-backend/database"
	"github.com/aurahealth/aura-backend/jobs"
	"github.com/aurahealth/aura-backend/libs"
	"github.com/aurahealth/aura-backend/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

const responseStyleProfessional = "professional_therapist"

type ChatHandler struct {
	Gen    libs.Generator
	Log    *zap.SugaredLogger
	Worker *jobs.Worker
}

// CreateSession opens a fresh, empty chat session for the caller.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := libs.FindUserByID(ctx, userID.Hex()); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	now := time.Now()
	session := model.ChatSession{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Messages:  []model.ChatMessage{},
		StartTime: now,
		Status:    model.SessionStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := database.GetCollection(database.ChatSessions).InsertOne(ctx, session); err != nil {
		h.Log.Errorw("failed to create chat session", "userId", userID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating chat session"})
		return
	}

	h.Log.Infow("chat session created", "sessionId", session.SessionID, "userId", userID.Hex())
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Chat session created successfully",
		"sessionId": session.SessionID,
		"createdAt": session.CreatedAt,
		"updatedAt": session.UpdatedAt,
	})
}

// GetSessions returns all of the caller's sessions, newest first, with full
// message arrays.
func (h *ChatHandler) GetSessions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := database.GetCollection(database.ChatSessions).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		h.Log.Errorw("failed to fetch chat sessions", "userId", userID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching chat sessions"})
		return
	}
	defer cursor.Close(ctx)

	sessions := []model.ChatSession{}
	if err := cursor.All(ctx, &sessions); err != nil {
		h.Log.Errorw("failed to decode chat sessions", "userId", userID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching chat sessions"})
		return
	}

	out := make([]gin.H, 0, len(sessions))
	for _, s := range sessions {
		msgs := s.Messages
		if msgs == nil {
			msgs = []model.ChatMessage{}
		}
		out = append(out, gin.H{
			"sessionId": s.SessionID,
			"messages":  msgs,
			"createdAt": s.CreatedAt,
			"updatedAt": s.UpdatedAt,
			"status":    s.Status,
		})
	}

	h.Log.Infow("fetched chat sessions", "userId", userID.Hex(), "count", len(out))
	c.JSON(http.StatusOK, out)
}

// GetSession fetches one session scoped to its owner.
func (h *ChatHandler) GetSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID := c.Param("sessionId")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var session model.ChatSession
	err := database.GetCollection(database.ChatSessions).
		FindOne(ctx, bson.M{"session_id": sessionID, "user_id": userID}).
		Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Chat session not found"})
			return
		}
		h.Log.Errorw("failed to get chat session", "sessionId", sessionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get chat session"})
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetHistory returns a session's message array. History reads are
// owner-scoped: knowing a sessionId is not enough.
func (h *ChatHandler) GetHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID := c.Param("sessionId")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var session model.ChatSession
	err := database.GetCollection(database.ChatSessions).
		FindOne(ctx, bson.M{"session_id": sessionID, "user_id": userID}).
		Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Session not found"})
			return
		}
		h.Log.Errorw("failed to fetch session history", "sessionId", sessionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching session history"})
		return
	}

	msgs := session.Messages
	if msgs == nil {
		msgs = []model.ChatMessage{}
	}
	c.JSON(http.StatusOK, gin.H{
		"messages":  msgs,
		"startTime": session.StartTime,
		"status":    session.Status,
	})
}

// SendMessage runs one synchronous conversation turn: resolve and claim the
// session, analyze, pick a template, generate and clean the reply, extract
// themes, persist both messages. Gateway failures degrade to fallbacks; only
// store failures surface as errors.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID := c.Param("sessionId")

	type Body struct {
		Message string `json:"message"`
	}
	var body Body
	if err := c.ShouldBindJSON(&body); err != nil || body.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Message is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 40*time.Second)
	defer cancel()

	session, err := h.resolveSession(ctx, sessionID, userID)
	if err != nil {
		h.Log.Errorw("failed to resolve chat session", "sessionId", sessionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error processing therapeutic message"})
		return
	}
	if err := h.claimSession(ctx, session, userID); err != nil {
		h.Log.Errorw("failed to claim chat session", "sessionId", sessionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error processing therapeutic message"})
		return
	}

	analysis := libs.AnalyzeMessage(ctx, h.Gen, body.Message, len(session.Messages), h.Log)

	prompt := libs.BuildFinalPrompt(libs.SelectTemplate(analysis, body.Message, session.Messages))
	reply := libs.CleanResponse(libs.GenerateReply(ctx, h.Gen, prompt, h.Log), analysis)

	now := time.Now()
	withCurrent := append(copyMessages(session.Messages), model.ChatMessage{Content: body.Message})
	userMsg := model.ChatMessage{
		Role:      model.RoleUser,
		Content:   body.Message,
		Timestamp: now,
		Metadata: &model.MessageMetadata{
			ClinicalAnalysis: &analysis,
			Themes:           libs.ExtractThemes(withCurrent),
		},
	}

	withUser := append(copyMessages(session.Messages), userMsg)
	assistantMsg := model.ChatMessage{
		Role:      model.RoleAssistant,
		Content:   reply,
		Timestamp: now,
		Metadata: &model.MessageMetadata{
			ClinicalAnalysis:    &analysis,
			TherapeuticApproach: analysis.SuggestedApproach,
			FocusArea:           analysis.PrimaryFocus,
			ResponseStyle:       responseStyleProfessional,
			Themes:              libs.ExtractThemes(append(copyMessages(withUser), model.ChatMessage{Content: reply})),
		},
	}

	// One update appends the whole turn so a turn is never half-persisted.
	update := bson.M{
		"$push": bson.M{"messages": bson.M{"$each": bson.A{userMsg, assistantMsg}}},
		"$set":  bson.M{"updated_at": now},
	}
	if _, err := database.GetCollection(database.ChatSessions).
		UpdateOne(ctx, bson.M{"session_id": sessionID}, update); err != nil {
		h.Log.Errorw("failed to persist chat turn", "sessionId", sessionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error processing therapeutic message"})
		return
	}

	h.Log.Infow("therapeutic session updated",
		"sessionId", sessionID,
		"messageCount", len(session.Messages)+2,
		"therapeuticApproach", analysis.SuggestedApproach,
	)

	if h.Worker != nil {
		h.Worker.Publish(jobs.Event{
			Type:      jobs.EventSessionMessage,
			UserID:    userID,
			SessionID: sessionID,
			Message:   body.Message,
			History:   session.Messages,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"response": reply,
		"message":  reply,
		"analysis": analysis,
		"metadata": gin.H{
			"therapeuticApproach": analysis.SuggestedApproach,
			"focusArea":           analysis.PrimaryFocus,
			"responseStyle":       responseStyleProfessional,
		},
	})
}

// resolveSession finds a session by id, creating it with the caller as
// owner when absent.
func (h *ChatHandler) resolveSession(ctx context.Context, sessionID string, userID bson.ObjectID) (*model.ChatSession, error) {
	var session model.ChatSession
	err := database.GetCollection(database.ChatSessions).
		FindOne(ctx, bson.M{"session_id": sessionID}).
		Decode(&session)
	if err == nil {
		return &session, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	now := time.Now()
	session = model.ChatSession{
		SessionID: sessionID,
		UserID:    userID,
		Messages:  []model.ChatMessage{},
		StartTime: now,
		Status:    model.SessionStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := database.GetCollection(database.ChatSessions).InsertOne(ctx, session); err != nil {
		return nil, err
	}
	h.Log.Infow("chat session auto-created", "sessionId", sessionID, "userId", userID.Hex())
	return &session, nil
}

// claimSession attaches an owner to a session that has none. Idempotent:
// sessions with an owner are left untouched.
func (h *ChatHandler) claimSession(ctx context.Context, session *model.ChatSession, userID bson.ObjectID) error {
	if !session.UserID.IsZero() {
		return nil
	}
	_, err := database.GetCollection(database.ChatSessions).UpdateOne(ctx,
		bson.M{"session_id": session.SessionID},
		bson.M{"$set": bson.M{"user_id": userID}},
	)
	if err != nil {
		return err
	}
	session.UserID = userID
	h.Log.Infow("chat session claimed", "sessionId", session.SessionID, "userId", userID.Hex())
	return nil
}

func copyMessages(msgs []model.ChatMessage) []model.ChatMessage {
	out := make([]model.ChatMessage, len(msgs))
	copy(out, msgs)
	return out
}
