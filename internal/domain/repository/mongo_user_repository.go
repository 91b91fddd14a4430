package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Parth2500/Jwt-Auth/internal/common"
	"github.com/Parth2500/Jwt-Auth/internal/domain/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const UsersCollection = "users"

// userDocument is the stored shape of a user.
type userDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	FirstName      string             `bson:"firstname"`
	LastName       string             `bson:"lastname"`
	Email          string             `bson:"email"`
	Password       string             `bson:"password"` // hashed
	Birthdate      time.Time          `bson:"birthdate"`
	Age            int                `bson:"age"`
	Location       string             `bson:"location,omitempty"`
	Bio            string             `bson:"bio,omitempty"`
	ProfilePicture string             `bson:"profilePicture,omitempty"`
	IsActive       bool               `bson:"isActive"`
	CreatedAt      time.Time          `bson:"createdAt"`
	ModifiedAt     *time.Time         `bson:"modifiedAt,omitempty"`
}

func toDocument(u *model.User) (userDocument, error) {
	doc := userDocument{
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Password:       u.PasswordHash,
		Birthdate:      u.Birthdate,
		Age:            u.Age,
		Location:       u.Location,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		ModifiedAt:     u.ModifiedAt,
	}
	if u.ID != "" {
		oid, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return doc, fmt.Errorf("invalid user id %q: %w", u.ID, common.ErrBadRequest)
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d *userDocument) toModel() *model.User {
	return &model.User{
		ID:             d.ID.Hex(),
		Username:       d.Username,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Email:          d.Email,
		PasswordHash:   d.Password,
		Birthdate:      d.Birthdate,
		Age:            d.Age,
		Location:       d.Location,
		Bio:            d.Bio,
		ProfilePicture: d.ProfilePicture,
		IsActive:       d.IsActive,
		CreatedAt:      d.CreatedAt,
		ModifiedAt:     d.ModifiedAt,
	}
}

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(coll *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{coll: coll}
}

// EnsureUserIndexes builds the unique indexes that back username and email
// uniqueness. Emails are normalized before storage, so a plain unique
// index is case-insensitive in effect.
func EnsureUserIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("username_unique")},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_unique")},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) Create(ctx context.Context, user *model.User) error {
	doc, err := toDocument(user)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if common.IsDuplicateKey(err) {
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("MongoUserRepository.Create: %w", err)
	}
	user.ID = doc.ID.Hex()
	return nil
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "username", Value: username}}, "FindByUsername")
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrNotFound
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}}, "FindByID")
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.D, op string) (*model.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("MongoUserRepository.%s: %w", op, err)
	}
	return doc.toModel(), nil
}

// Update sets the profile fields of an existing document. Username,
// password, activation flag and creation time are never written here.
func (r *MongoUserRepository) Update(ctx context.Context, user *model.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return common.ErrNotFound
	}
	set := bson.D{
		{Key: "firstname", Value: user.FirstName},
		{Key: "lastname", Value: user.LastName},
		{Key: "email", Value: user.Email},
		{Key: "birthdate", Value: user.Birthdate},
		{Key: "age", Value: user.Age},
		{Key: "location", Value: user.Location},
		{Key: "bio", Value: user.Bio},
		{Key: "profilePicture", Value: user.ProfilePicture},
		{Key: "modifiedAt", Value: user.ModifiedAt},
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		if common.IsDuplicateKey(err) {
			return fmt.Errorf("email already in use: %w", common.ErrConflict)
		}
		return fmt.Errorf("MongoUserRepository.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}
