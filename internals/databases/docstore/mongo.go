// internals/databases/docstore/mongo.go
package docstore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore backs the adapter with a mongo database. Filters and
// updates are operator documents already, so calls map 1:1 onto the
// driver; UpdateOne inherits Mongo's per-document atomicity.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) Collection(name string) Collection {
	return &mongoCollection{col: s.db.Collection(name)}
}

type mongoCollection struct {
	col *mongo.Collection
}

func (c *mongoCollection) FindByID(ctx context.Context, id string, out any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	return c.FindOne(ctx, M{"_id": oid}, out)
}

func (c *mongoCollection) FindOne(ctx context.Context, filter M, out any) error {
	err := c.col.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (c *mongoCollection) Find(ctx context.Context, filter M, out any, opts ...FindOption) error {
	o := applyFindOptions(opts)
	fo := options.Find()
	if o.sortField != "" {
		dir := 1
		if o.sortDesc {
			dir = -1
		}
		fo.SetSort(bson.D{{Key: o.sortField, Value: dir}})
	}
	if o.limit > 0 {
		fo.SetLimit(o.limit)
	}
	cur, err := c.col.Find(ctx, filter, fo)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

func (c *mongoCollection) InsertOne(ctx context.Context, doc any) (string, error) {
	res, err := c.col.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("docstore: inserted id is not an ObjectID")
	}
	return oid.Hex(), nil
}

func (c *mongoCollection) UpdateOne(ctx context.Context, filter M, update M) (bool, error) {
	res, err := c.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (c *mongoCollection) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := c.col.DeleteOne(ctx, M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
