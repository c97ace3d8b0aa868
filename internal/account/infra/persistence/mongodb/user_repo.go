package mongodb

import (
	"context"
	"errors"

	"VillageEmpire/internal/account/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const userCollectionName = "user"

var errNilCollection = errors.New("mongodb user collection is nil")

type userDoc struct {
	UID          int64  `bson:"_id"`
	Username     string `bson:"username"`
	PasswordHash string `bson:"password_hash"`
	CreatedAtMs  int64  `bson:"created_at_ms"`
}

type UserRepo struct {
	coll *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	if db == nil {
		return &UserRepo{}
	}
	return &UserRepo{coll: db.Collection(userCollectionName)}
}

// EnsureIndexes username 唯一。
func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	if r == nil || r.coll == nil {
		return domain.ErrSystemUnavailable.WithCause(errNilCollection)
	}
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uk_username"),
	})
	if err != nil {
		return domain.ErrSystemUnavailable.WithCause(err)
	}
	return nil
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if r == nil || r.coll == nil {
		return nil, domain.ErrSystemUnavailable.WithCause(errNilCollection)
	}
	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	switch {
	case err == nil:
		return &domain.User{UID: doc.UID, Username: doc.Username, PasswordHash: doc.PasswordHash, CreatedAtMs: doc.CreatedAtMs}, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, domain.ErrUserNotFound.WithData("username", username)
	default:
		return nil, domain.ErrSystemUnavailable.WithData("username", username).WithCause(err)
	}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if r == nil || r.coll == nil {
		return domain.ErrSystemUnavailable.WithCause(errNilCollection)
	}
	_, err := r.coll.InsertOne(ctx, userDoc{
		UID:          u.UID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAtMs:  u.CreatedAtMs,
	})
	switch {
	case err == nil:
		return nil
	case mongo.IsDuplicateKeyError(err):
		return domain.ErrUserExists.WithData("username", u.Username)
	default:
		return domain.ErrSystemUnavailable.WithData("username", u.Username).WithCause(err)
	}
}
