package repo

import (
	"context"
	"fmt"

	"github.com/beka-birhanu/maze-collapse/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RunRepo stores finished runs.
type RunRepo struct {
	collection *mongo.Collection
}

// NewRunRepo creates a new RunRepo with the given MongoDB client, database name, and collection name.
func NewRunRepo(client *mongo.Client, dbName, collectionName string) *RunRepo {
	return &RunRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// EnsureIndexes creates the index backing per-player history queries and the
// unique ticket index that makes every run ticket single use.
func (r *RunRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "playerId", Value: 1}, {Key: "finishedAt", Value: -1}},
		},
		{
			Keys:    bson.D{{Key: "ticketId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

// Save inserts a run. It returns domain.ErrTicketRedeemed when a run with the
// same ticket already exists.
func (r *RunRepo) Save(ctx context.Context, run *domain.Run) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, run); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrTicketRedeemed
		}
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// ByPlayer returns up to limit runs of the player, newest first.
func (r *RunRepo) ByPlayer(ctx context.Context, playerID uuid.UUID, limit int64) ([]*domain.Run, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "finishedAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"playerId": playerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("finding runs: %w", err)
	}
	defer cursor.Close(ctx)

	runs := []*domain.Run{}
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, fmt.Errorf("decoding runs: %w", err)
	}
	return runs, nil
}
