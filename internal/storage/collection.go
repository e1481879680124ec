package storage

import (
	"context"
	"time"

	"github.com/hnzhou16/project-cocraft-redesign/internal/db"
)

var (
	QueryTimeout = 5 * time.Second
)

type Collection struct {
	Generation interface {
		Create(ctx context.Context, g *Generation) error
		GetByID(ctx context.Context, generationID string) (*Generation, error)
	}
}

func NewSQLCollections(dbConn *db.SQLConnection) Collection {
	return Collection{
		Generation: &GenerationSQLStorage{db: dbConn.DB},
	}
}

func NewMongoDBCollections(dbConn *db.DBConnection) Collection {
	return Collection{
		Generation: &GenerationMongoStorage{collection: dbConn.GetCollection("generations")},
	}
}
