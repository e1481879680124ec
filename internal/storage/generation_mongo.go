package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type GenerationMongoStorage struct {
	collection *mongo.Collection
}

func (g *GenerationMongoStorage) Create(ctx context.Context, gen *Generation) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	_, err := g.collection.InsertOne(ctxTimeout, generationDocument(gen))
	if err != nil {
		return fmt.Errorf("failed to create generation: %w", err)
	}

	return nil
}

// generationDocument keeps a nil email as null and outputs as a plain array.
func generationDocument(gen *Generation) bson.M {
	return bson.M{
		"_id":        gen.ID,
		"user_email": gen.UserEmail,
		"input_url":  gen.InputURL,
		"outputs":    []string(gen.Outputs),
		"style":      gen.Style,
		"created_at": gen.CreatedAt,
	}
}

func (g *GenerationMongoStorage) GetByID(ctx context.Context, generationID string) (*Generation, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	var gen Generation
	err := g.collection.FindOne(ctxTimeout, bson.M{"_id": generationID}).Decode(&gen)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrGenerationNotFound
		}
		return nil, fmt.Errorf("generation query failed: %w", err)
	}

	gen.CreatedAt = gen.CreatedAt.UTC()
	return &gen, nil
}
