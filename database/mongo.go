package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names used across the service.
const (
	Users           = "users"
	Moods           = "moods"
	Activities      = "activities"
	ChatSessions    = "chat_sessions"
	SessionInsights = "session_insights"
	Recommendations = "recommendations"
)

var (
	client *mongo.Client
	dbName string
)

func Connect(uri, name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	if err := c.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}

	client = c
	dbName = name
	return nil
}

func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func GetDatabase() *mongo.Database {
	return client.Database(dbName)
}

func GetCollection(name string) *mongo.Collection {
	return client.Database(dbName).Collection(name)
}
