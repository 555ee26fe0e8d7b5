package libs

import (
	"context"
	"fmt"
	"time"

	"github.com/aurahealth/aura-backend/database"
	"github.com/aurahealth/aura-backend/model"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"
)

func CreateUser(ctx context.Context, user *model.User) (bson.ObjectID, error) {
	user.ID = bson.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := database.GetCollection(database.Users).InsertOne(ctx, user)
	return user.ID, err
}

func EmailExists(ctx context.Context, email string) (bool, error) {
	filter := bson.M{"email": email}

	var user model.User
	err := database.GetCollection(database.Users).FindOne(ctx, filter).Decode(&user)
	switch err {
	case nil:
		return true, nil
	case mongo.ErrNoDocuments:
		return false, nil
	default:
		return false, fmt.Errorf("database error during email search: %w", err)
	}
}

func FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := database.GetCollection(database.Users).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user with email '%s' not found", email)
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return &user, nil
}

func FindUserByID(ctx context.Context, id string) (*model.User, error) {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id format")
	}

	var user model.User
	err = database.GetCollection(database.Users).FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user with id '%s' not found", id)
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return &user, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateJWT creates a signed bearer token carrying the user id.
func GenerateJWT(userID, secret string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
