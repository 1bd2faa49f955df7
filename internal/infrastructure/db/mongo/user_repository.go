package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Akhilesh53/authcore/internal/core/domain"
)

const userCollection = "users"

// MongoUserRepository persists credential records in a MongoDB collection.
// Email uniqueness is a collection-level unique index, so the check and the
// insert cannot race.
type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(userCollection)}
}

// EnsureIndexes creates the unique email index. Call once at startup before
// serving traffic.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	DisplayName  string             `bson:"display_name,omitempty"`
	PasswordHash string             `bson:"password_hash"`
	ResetToken   string             `bson:"reset_token,omitempty"`
	ResetExpires time.Time          `bson:"reset_expires,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt.Unix(),
		UpdatedAt:    user.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepository) FindByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	return r.findOne(ctx, bson.M{
		"reset_token":   token,
		"reset_expires": bson.M{"$gt": now},
	})
}

func (r *MongoUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{
			"password_hash": passwordHash,
			"updated_at":    time.Now().UTC().Unix(),
		},
	})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{
			"reset_token":   token,
			"reset_expires": expiresAt,
			"updated_at":    time.Now().UTC().Unix(),
		},
	})
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ConsumeResetToken swaps the hash and clears both reset fields in a single
// FindOneAndUpdate, so two completions racing on the same token serialize at
// the document: the loser matches nothing and sees ErrUserNotFound.
func (r *MongoUserRepository) ConsumeResetToken(ctx context.Context, token string, now time.Time, passwordHash string) (*domain.User, error) {
	filter := bson.M{
		"reset_token":   token,
		"reset_expires": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set": bson.M{
			"password_hash": passwordHash,
			"updated_at":    now.Unix(),
		},
		"$unset": bson.M{
			"reset_token":   "",
			"reset_expires": "",
		},
	}

	var mu mongoUser
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("consume reset token: %w", err)
	}
	return toDomain(&mu), nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomain(&mu), nil
}

func toDomain(mu *mongoUser) *domain.User {
	return &domain.User{
		ID:                  mu.ID.Hex(),
		Email:               mu.Email,
		DisplayName:         mu.DisplayName,
		PasswordHash:        mu.PasswordHash,
		ResetToken:          mu.ResetToken,
		ResetTokenExpiresAt: mu.ResetExpires,
		CreatedAt:           unixToTime(mu.CreatedAt),
		UpdatedAt:           unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
