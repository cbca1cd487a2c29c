package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/maze-collapse/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	writeTimeout = time.Second
	readTimeout  = 2 * time.Second
)

// PlayerRepo handles the persistence of player accounts.
type PlayerRepo struct {
	collection *mongo.Collection
}

// NewPlayerRepo creates a new PlayerRepo with the given MongoDB client, database name, and collection name.
func NewPlayerRepo(client *mongo.Client, dbName, collectionName string) *PlayerRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &PlayerRepo{
		collection: collection,
	}
}

// EnsureIndexes creates the unique username index.
func (p *PlayerRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	_, err := p.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Save inserts or updates a player in the repository.
// If the player already exists, it updates the existing record.
// If the player does not exist, it adds a new record.
func (p *PlayerRepo) Save(ctx context.Context, player *domain.Player) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	filter := bson.M{"_id": player.ID}
	update := bson.M{
		"$set": bson.M{
			"username":     player.Username,
			"passwordHash": player.PasswordHash,
			"updatedAt":    time.Now(),
		},
		"$setOnInsert": bson.M{
			"createdAt": player.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := p.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUsernameConflict
		}
		return fmt.Errorf("saving player: %w", err)
	}

	return nil
}

// ByUsername retrieves a player by their username.
func (p *PlayerRepo) ByUsername(ctx context.Context, username string) (*domain.Player, error) {
	return p.findOne(ctx, bson.M{"username": username})
}

func (p *PlayerRepo) findOne(ctx context.Context, filter bson.M) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var player domain.Player
	if err := p.collection.FindOne(ctx, filter).Decode(&player); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("finding player: %w", err)
	}
	return &player, nil
}
