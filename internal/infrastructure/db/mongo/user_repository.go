package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marketbay/storefront-api/internal/core/domain"
)

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// mongoRoles keeps the presence-by-slot shape: a populated slot is the grant,
// an absent slot is no grant.
type mongoRoles struct {
	User   int `bson:"User"`
	Editor int `bson:"Editor,omitempty"`
	Admin  int `bson:"Admin,omitempty"`
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email,omitempty"`
	Age          string             `bson:"age,omitempty"`
	Job          string             `bson:"job,omitempty"`
	Country      string             `bson:"country,omitempty"`
	Password     string             `bson:"password"`
	Roles        mongoRoles         `bson:"roles"`
	RefreshToken string             `bson:"refreshToken,omitempty"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		Username:     mu.Username,
		Email:        mu.Email,
		Age:          mu.Age,
		Job:          mu.Job,
		Country:      mu.Country,
		PasswordHash: mu.Password,
		Roles: domain.RoleSet{
			User:   mu.Roles.User,
			Editor: mu.Roles.Editor,
			Admin:  mu.Roles.Admin,
		},
		RefreshToken: mu.RefreshToken,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Username: user.Username,
		Email:    user.Email,
		Age:      user.Age,
		Job:      user.Job,
		Country:  user.Country,
		Password: user.PasswordHash,
		Roles: mongoRoles{
			User:   user.Roles.User,
			Editor: user.Roles.Editor,
			Admin:  user.Roles.Admin,
		},
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// FindByUsername matches the stored username byte-for-byte; "Walter" and
// "walter" are distinct accounts here.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindByRefreshToken(ctx context.Context, token string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"refreshToken": token}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return mu.toDomain(), nil
}

// UsernameExists checks availability case-insensitively, unlike login.
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"username": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(username) + "$",
		Options: "i",
	}}

	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

// SetRefreshToken overwrites the single refresh-token slot; the previous token
// stops resolving immediately.
func (r *UserRepository) SetRefreshToken(ctx context.Context, username, token string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"refreshToken": token}},
	)
	if err != nil {
		return fmt.Errorf("set refresh token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ClearRefreshToken unsets the slot wherever the token matches. Matching
// nothing is fine; logout is idempotent.
func (r *UserRepository) ClearRefreshToken(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"refreshToken": token},
		bson.M{"$unset": bson.M{"refreshToken": ""}},
	)
	if err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, *mu.toDomain())
	}
	return users, cur.Err()
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateRole applies the named role in one conditional write. Admin and
// Editor displace each other; User strips both back to the baseline.
func (r *UserRepository) UpdateRole(ctx context.Context, id, role string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var update bson.M
	switch role {
	case "Admin":
		update = bson.M{
			"$set":   bson.M{"roles.Admin": domain.RoleAdmin},
			"$unset": bson.M{"roles.Editor": ""},
		}
	case "Editor":
		update = bson.M{
			"$set":   bson.M{"roles.Editor": domain.RoleEditor},
			"$unset": bson.M{"roles.Admin": ""},
		}
	case "User":
		update = bson.M{
			"$set":   bson.M{"roles.User": domain.RoleUser},
			"$unset": bson.M{"roles.Admin": "", "roles.Editor": ""},
		}
	default:
		return nil, domain.ErrValidation
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mu mongoUser
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update role: %w", err)
	}
	return mu.toDomain(), nil
}

// EnsureIndexes creates the unique username index that backs duplicate
// detection on Create.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "refreshToken", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
