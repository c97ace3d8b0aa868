package mongodb

import (
	"context"
	"errors"

	"VillageEmpire/internal/village/domain"
	"VillageEmpire/internal/village/infra/persistence/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultVillageCollectionName = "village"

var errNilCollection = errors.New("mongodb village collection is nil")

type VillageRepo struct {
	coll *mongo.Collection
}

func NewVillageRepo(db *mongo.Database) *VillageRepo {
	if db == nil {
		return &VillageRepo{}
	}
	return &VillageRepo{coll: db.Collection(defaultVillageCollectionName)}
}

// EnsureIndexes owner_id 唯一索引，保证一个用户只有一个村庄。
func (r *VillageRepo) EnsureIndexes(ctx context.Context) error {
	if r == nil || r.coll == nil {
		return domain.ErrSystemUnavailable.WithCause(errNilCollection)
	}
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uk_owner"),
	})
	if err != nil {
		return domain.ErrSystemUnavailable.WithCause(err)
	}
	return nil
}

func (r *VillageRepo) FindByOwner(ctx context.Context, owner domain.OwnerID) (*domain.Village, error) {
	if r == nil || r.coll == nil {
		return nil, domain.ErrSystemUnavailable.WithCause(errNilCollection)
	}

	var doc model.VillageDoc
	err := r.coll.FindOne(ctx, bson.M{"owner_id": int64(owner)}).Decode(&doc)
	switch {
	case err == nil:
		return model.DocToVillage(doc), nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, domain.ErrVillageNotFound.WithData("owner", int64(owner))
	default:
		return nil, domain.ErrSystemUnavailable.WithData("owner", int64(owner)).WithCause(err)
	}
}

func (r *VillageRepo) Create(ctx context.Context, v *domain.Village) error {
	if r == nil || r.coll == nil {
		return domain.ErrSystemUnavailable.WithCause(errNilCollection)
	}
	_, err := r.coll.InsertOne(ctx, model.VillageToDoc(v))
	switch {
	case err == nil:
		return nil
	case mongo.IsDuplicateKeyError(err):
		return domain.ErrVillageExists.WithData("owner", int64(v.OwnerID))
	default:
		return domain.ErrSystemUnavailable.WithData("owner", int64(v.OwnerID)).WithCause(err)
	}
}

// Save 按版本号条件更新可变字段，版本不符时不写入。
func (r *VillageRepo) Save(ctx context.Context, v *domain.Village, expectedVersion int64) error {
	if r == nil || r.coll == nil {
		return domain.ErrSystemUnavailable.WithCause(errNilCollection)
	}

	doc := model.VillageToDoc(v)
	res, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": doc.ID, "version": expectedVersion},
		bson.M{"$set": bson.M{
			"level":                   doc.Level,
			"resources":               doc.Resources,
			"carry":                   doc.Carry,
			"buildings":               doc.Buildings,
			"speed_up_points":         doc.SpeedUpPoints,
			"last_resource_update_ms": doc.LastResourceUpdateMs,
			"version":                 doc.Version,
		}},
	)
	if err != nil {
		return domain.ErrSystemUnavailable.WithData("village", doc.ID).WithCause(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVersionConflict.WithDataMap(map[string]any{
			"village":  doc.ID,
			"expected": expectedVersion,
		})
	}
	return nil
}
