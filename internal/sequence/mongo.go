package sequence

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCounter keeps counters as {_id: name, seq: n} documents in the
// counters collection.
type MongoCounter struct {
	coll *mongo.Collection
}

func NewMongoCounter(db *mongo.Database) *MongoCounter {
	return &MongoCounter{coll: db.Collection("counters")}
}

// Increment performs a single $inc with upsert and reads back the document
// after the update, so the read and the write are one server-side step.
func (c *MongoCounter) Increment(ctx context.Context, name string) (int64, error) {
	seq, err := c.increment(ctx, name)
	if mongo.IsDuplicateKeyError(err) {
		// two first-ever upserts raced on the same _id; the loser retries
		// against the document the winner created.
		seq, err = c.increment(ctx, name)
	}
	return seq, err
}

func (c *MongoCounter) increment(ctx context.Context, name string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := c.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}
