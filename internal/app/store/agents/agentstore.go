// internal/app/store/agents/agentstore.go
package agentstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/imanprime/estatecms/internal/app/system/paging"
	"github.com/imanprime/estatecms/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound       = errors.New("agent not found")
	ErrDuplicateEmail = errors.New("an agent with this email already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("agents")}
}

// Create inserts a new agent.
func (s *Store) Create(ctx context.Context, a models.Agent) (models.Agent, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.IsActive = true
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Agent{}, ErrDuplicateEmail
		}
		return models.Agent{}, err
	}
	return a, nil
}

// GetByID retrieves an agent by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Agent, error) {
	var a models.Agent
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Agent{}, ErrNotFound
		}
		return models.Agent{}, err
	}
	return a, nil
}

// UpdateFields applies a pre-built $set document and returns the updated
// agent.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Agent, error) {
	if set == nil {
		set = bson.M{}
	}
	set["updated_at"] = time.Now().UTC()

	var a models.Agent
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Agent{}, ErrNotFound
		}
		if wafflemongo.IsDup(err) {
			return models.Agent{}, ErrDuplicateEmail
		}
		return models.Agent{}, err
	}
	return a, nil
}

// Delete removes an agent by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Filter narrows an agent listing.
type Filter struct {
	Specialization string
	ActiveOnly     bool
}

func (f Filter) query() bson.M {
	q := bson.M{}
	if f.ActiveOnly {
		q["is_active"] = true
	}
	if f.Specialization != "" {
		q["specialization"] = f.Specialization
	}
	return q
}

// List returns one page of agents sorted by name, plus the total count.
func (s *Store) List(ctx context.Context, f Filter, page paging.Params) ([]models.Agent, int64, error) {
	q := f.query()

	total, err := s.c.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(page.Skip()).
		SetLimit(page.Limit64())
	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	agents := []models.Agent{}
	if err := cur.All(ctx, &agents); err != nil {
		return nil, 0, err
	}
	return agents, total, nil
}
