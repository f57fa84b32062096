package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{coll: db.Collection(usersCollection)}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts a new account; ErrDuplicate when the email is taken.
func (s *UserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	if _, ok := models.ParseRole(string(user.Role)); !ok {
		return models.User{}, ErrInvalidRole
	}

	user.Email = normalizeEmail(user.Email)
	count, err := s.coll.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return models.User{}, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return models.User{}, ErrDuplicate
	}

	now := time.Now()
	user.ID = primitive.NilObjectID
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", translate(err))
	}
	user.ID, _ = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := s.coll.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&user); err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

// List returns all accounts without password hashes.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (s *UserStore) UpdateRole(ctx context.Context, id primitive.ObjectID, role models.Role) error {
	if _, ok := models.ParseRole(string(role)); !ok {
		return ErrInvalidRole
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertAdmin creates an admin account, or promotes and re-keys the existing
// account with the same email.
func (s *UserStore) UpsertAdmin(ctx context.Context, name, email, passwordHash string) error {
	now := time.Now()
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"email": normalizeEmail(email)},
		bson.M{
			"$set": bson.M{
				"name":      name,
				"password":  passwordHash,
				"role":      models.RoleAdmin,
				"updatedAt": now,
			},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert admin: %w", err)
	}
	return nil
}
