package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/aurahealth/aura-backend/database"
	"github.com/aurahealth/aura-backend/jobs"
	"github.com/aurahealth/aura-backend/model"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type MoodHandler struct {
	Log    *zap.SugaredLogger
	Worker *jobs.Worker
}

// CreateMood appends an immutable mood entry for the caller.
func (h *MoodHandler) CreateMood(c *gin.Context) {
	type Body struct {
		Score      *int     `json:"score"`
		Note       string   `json:"note"`
		Context    string   `json:"context"`
		Activities []string `json:"activities"`
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var body Body
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if body.Score == nil || *body.Score < 0 || *body.Score > 10 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Score must be between 0 and 10"})
		return
	}

	mood := model.MoodEntry{
		UserID:     userID,
		Score:      *body.Score,
		Note:       body.Note,
		Context:    body.Context,
		Activities: body.Activities,
		Timestamp:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	res, err := database.GetCollection(database.Moods).InsertOne(ctx, mood)
	if err != nil {
		h.Log.Errorw("failed to log mood", "userId", userID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		mood.ID = id
	}

	h.Log.Infow("mood logged", "userId", userID.Hex(), "score", mood.Score)

	if h.Worker != nil {
		h.Worker.Publish(jobs.Event{
			Type:        jobs.EventMoodUpdated,
			UserID:      userID,
			MoodScore:   mood.Score,
			MoodContext: mood.Context,
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    mood,
	})
}

// currentUserID reads the authenticated user id set by the JWT middleware.
// Writes a 401 and returns ok=false when it is missing or malformed.
func currentUserID(c *gin.Context) (bson.ObjectID, bool) {
	raw := c.GetString("userId")
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return bson.ObjectID{}, false
	}
	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return bson.ObjectID{}, false
	}
	return id, true
}
