package controllers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/aurahealth/aura-backend/database"
	"github.com/aurahealth/aura-backend/model"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

type ActivityHandler struct {
	Log *zap.SugaredLogger
}

type activityInput struct {
	Type         string     `json:"type"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Duration     *int       `json:"duration"`
	Difficulty   *int       `json:"difficulty"`
	Feedback     string     `json:"feedback"`
	ScheduledFor *time.Time `json:"scheduledFor"`
}

func validateActivityInput(in activityInput) error {
	if in.Type == "" || in.Name == "" {
		return errors.New("type and name are required fields")
	}
	if !model.ValidActivityType(in.Type) {
		return errors.New("unknown activity type")
	}
	if in.Duration != nil && *in.Duration <= 0 {
		return errors.New("duration must be greater than zero")
	}
	if in.Difficulty != nil && (*in.Difficulty < 1 || *in.Difficulty > 10) {
		return errors.New("difficulty must be between 1 and 10")
	}
	return nil
}

// deriveStatus: an activity with a schedule is pending, anything else is an
// already-completed log entry.
func deriveStatus(scheduledFor *time.Time) string {
	if scheduledFor != nil {
		return model.ActivityStatusScheduled
	}
	return model.ActivityStatusCompleted
}

func (h *ActivityHandler) LogActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var body activityInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err := validateActivityInput(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	activity := model.Activity{
		UserID:       userID,
		Type:         body.Type,
		Name:         body.Name,
		Description:  body.Description,
		Feedback:     body.Feedback,
		ScheduledFor: body.ScheduledFor,
		Timestamp:    time.Now(),
		Status:       deriveStatus(body.ScheduledFor),
	}
	if body.Duration != nil {
		activity.Duration = *body.Duration
	}
	if body.Difficulty != nil {
		activity.Difficulty = *body.Difficulty
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	res, err := database.GetCollection(database.Activities).InsertOne(ctx, activity)
	if err != nil {
		h.Log.Errorw("failed to log activity", "userId", userID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		activity.ID = id
	}

	h.Log.Infow("activity logged", "userId", userID.Hex(), "activityId", activity.ID.Hex(), "type", activity.Type)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Activity logged successfully",
		"data":    activity,
	})
}

func (h *ActivityHandler) GetUpcomingActivities(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, limit := parsePageLimit(c)

	filter := bson.M{
		"user_id":       userID,
		"status":        model.ActivityStatusScheduled,
		"scheduled_for": bson.M{"$gte": time.Now()},
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	coll := database.GetCollection(database.Activities)
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		h.Log.Errorw("failed to count upcoming activities", "userId", userID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}

	skip := int64((page - 1) * limit)
	opts := options.Find().
		SetSort(bson.M{"scheduled_for": 1}).
		SetSkip(skip).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		h.Log.Errorw("failed to fetch upcoming activities", "userId", userID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}
	defer cursor.Close(ctx)

	activities := []model.Activity{}
	if err := cursor.All(ctx, &activities); err != nil {
		h.Log.Errorw("failed to decode upcoming activities", "userId", userID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"activities": activities,
			"pagination": paginationMeta(page, limit, len(activities), total),
		},
	})
}

func (h *ActivityHandler) GetActivityHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, limit := parsePageLimit(c)

	filter := bson.M{
		"user_id": userID,
		"status":  model.ActivityStatusCompleted,
	}
	if t := c.Query("type"); t != "" {
		filter["type"] = t
	}
	if days, err := strconv.Atoi(c.Query("days")); err == nil && days > 0 {
		start := time.Now().AddDate(0, 0, -days)
		filter["timestamp"] = bson.M{"$gte": start}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	coll := database.GetCollection(database.Activities)
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		h.Log.Errorw("failed to count activity history", "userId", userID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}

	skip := int64((page - 1) * limit)
	opts := options.Find().
		SetSort(bson.M{"timestamp": -1}).
		SetSkip(skip).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		h.Log.Errorw("failed to fetch activity history", "userId", userID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}
	defer cursor.Close(ctx)

	activities := []model.Activity{}
	if err := cursor.All(ctx, &activities); err != nil {
		h.Log.Errorw("failed to decode activity history", "userId", userID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"activities": activities,
			"pagination": paginationMeta(page, limit, len(activities), total),
		},
	})
}

func (h *ActivityHandler) UpdateActivityStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	activityID, err := bson.ObjectIDFromHex(c.Param("activityId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid activity id"})
		return
	}

	type Body struct {
		Status   string `json:"status"`
		Feedback string `json:"feedback"`
	}
	var body Body
	if err := c.ShouldBindJSON(&body); err != nil || !model.ValidActivityStatus(body.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid status is required"})
		return
	}

	set := bson.M{"status": body.Status}
	if body.Feedback != "" {
		set["feedback"] = body.Feedback
	}
	if body.Status == model.ActivityStatusCompleted {
		set["timestamp"] = time.Now()
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// Ownership is part of the filter: someone else's activity reads as
	// not found, never as theirs.
	filter := bson.M{"_id": activityID, "user_id": userID}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.Activity
	err = database.GetCollection(database.Activities).
		FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).
		Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Activity not found"})
			return
		}
		h.Log.Errorw("failed to update activity status", "activityId", activityID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}

	h.Log.Infow("activity status updated", "userId", userID.Hex(), "activityId", activityID.Hex(), "newStatus", body.Status)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Activity updated successfully",
		"data":    updated,
	})
}

func (h *ActivityHandler) GetActivityStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	days := 30
	if d, err := strconv.Atoi(c.Query("days")); err == nil && d > 0 {
		days = d
	}
	start := time.Now().AddDate(0, 0, -days)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	coll := database.GetCollection(database.Activities)

	pipeline := []bson.M{
		{"$match": bson.M{
			"user_id":   userID,
			"status":    model.ActivityStatusCompleted,
			"timestamp": bson.M{"$gte": start},
		}},
		{"$group": bson.M{
			"_id":           "$type",
			"count":         bson.M{"$sum": 1},
			"totalDuration": bson.M{"$sum": "$duration"},
			"avgDifficulty": bson.M{"$avg": "$difficulty"},
		}},
		{"$project": bson.M{
			"_id":           0,
			"type":          "$_id",
			"count":         1,
			"totalDuration": 1,
			"avgDifficulty": bson.M{"$round": bson.A{"$avgDifficulty", 2}},
		}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		h.Log.Errorw("failed to aggregate activity stats", "userId", userID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}
	defer cursor.Close(ctx)

	type typeStat struct {
		Type          string  `json:"type" bson:"type"`
		Count         int     `json:"count" bson:"count"`
		TotalDuration int     `json:"totalDuration" bson:"totalDuration"`
		AvgDifficulty float64 `json:"avgDifficulty" bson:"avgDifficulty"`
	}
	byType := []typeStat{}
	if err := cursor.All(ctx, &byType); err != nil {
		h.Log.Errorw("failed to decode activity stats", "userId", userID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}

	totalActivities, err := coll.CountDocuments(ctx, bson.M{
		"user_id":   userID,
		"status":    model.ActivityStatusCompleted,
		"timestamp": bson.M{"$gte": start},
	})
	if err != nil {
		h.Log.Errorw("failed to count completed activities", "userId", userID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}

	upcomingCount, err := coll.CountDocuments(ctx, bson.M{
		"user_id":       userID,
		"status":        model.ActivityStatusScheduled,
		"scheduled_for": bson.M{"$gte": time.Now()},
	})
	if err != nil {
		h.Log.Errorw("failed to count upcoming activities", "userId", userID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"summary": gin.H{
				"totalActivities": totalActivities,
				"upcomingCount":   upcomingCount,
				"period":          strconv.Itoa(days) + " days",
			},
			"byType": byType,
		},
	})
}

type pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNext     bool  `json:"hasNext"`
}

// paginationMeta computes the page envelope. hasNext holds exactly when
// skip + returned < total.
func paginationMeta(page, limit, returned int, total int64) pagination {
	skip := (page - 1) * limit
	return pagination{
		CurrentPage: page,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		TotalCount:  total,
		HasNext:     int64(skip+returned) < total,
	}
}

func parsePageLimit(c *gin.Context) (page, limit int) {
	page, limit = 1, 10
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}
	return page, limit
}
