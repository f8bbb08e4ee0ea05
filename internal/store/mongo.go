package store

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ChrisCruze/Leo/internal/config"
	"github.com/ChrisCruze/Leo/internal/models"
)

const (
	usersCollection  = "users"
	eventsCollection = "events"
	ordersCollection = "orders"
)

// Store reads raw users, events and orders from the source database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    config.MongoConfig
	log    *slog.Logger
}

// New connects to the configured database and verifies the connection with a
// ping before returning.
func New(ctx context.Context, cfg config.MongoConfig, log *slog.Logger) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Info("connected to source database", "database", cfg.Database)
	return &Store{
		client: client,
		db:     client.Database(cfg.Database),
		cfg:    cfg,
		log:    log,
	}, nil
}

// Users fetches user documents matching filter. A nil filter fetches all
// documents; limit <= 0 means no limit.
func (s *Store) Users(ctx context.Context, filter bson.M, limit int64) ([]models.User, error) {
	var users []models.User
	if err := s.find(ctx, usersCollection, filter, limit, &users); err != nil {
		return nil, err
	}
	s.log.Info("fetched users", "count", len(users))
	return users, nil
}

// Events fetches event documents matching filter.
func (s *Store) Events(ctx context.Context, filter bson.M, limit int64) ([]models.Event, error) {
	var events []models.Event
	if err := s.find(ctx, eventsCollection, filter, limit, &events); err != nil {
		return nil, err
	}
	s.log.Info("fetched events", "count", len(events))
	return events, nil
}

// Orders fetches order documents matching filter.
func (s *Store) Orders(ctx context.Context, filter bson.M, limit int64) ([]models.Order, error) {
	var orders []models.Order
	if err := s.find(ctx, ordersCollection, filter, limit, &orders); err != nil {
		return nil, err
	}
	s.log.Info("fetched orders", "count", len(orders))
	return orders, nil
}

func (s *Store) find(ctx context.Context, collection string, filter bson.M, limit int64, out any) error {
	queryCtx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.db.Collection(collection).Find(queryCtx, filter, opts)
	if err != nil {
		return fmt.Errorf("find %s: %w", collection, err)
	}
	defer cursor.Close(queryCtx)

	if err := cursor.All(queryCtx, out); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

// Close disconnects from the database.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
