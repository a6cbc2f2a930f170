// internal/app/store/properties/propertystore.go
package propertystore

import (
	"context"
	"errors"
	"strconv"
	"time"

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

var ErrNotFound = errors.New("property not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("properties")}
}

// Create inserts a new listing.
func (s *Store) Create(ctx context.Context, p models.Property) (models.Property, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	if p.Status == "" {
		p.Status = models.PropertyActive
	}
	p.Views = 0
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Property{}, err
	}
	return p, nil
}

// GetByID retrieves a listing by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Property, error) {
	var p models.Property
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Property{}, ErrNotFound
		}
		return models.Property{}, err
	}
	return p, nil
}

// UpdateFields applies a pre-built $set document and returns the updated
// listing.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Property, error) {
	if set == nil {
		set = bson.M{}
	}
	set["updated_at"] = time.Now().UTC()

	var p models.Property
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Property{}, ErrNotFound
		}
		return models.Property{}, err
	}
	return p, nil
}

// Delete removes a listing by ID.
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

// IncrementViews bumps the view counter without touching updated_at, so
// analytics traffic never looks like an edit.
func (s *Store) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountActiveByAgent returns how many non-deleted listings reference the
// agent. Used to block agent deletion while listings are live.
func (s *Store) CountActiveByAgent(ctx context.Context, agentID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"agent_id": agentID,
		"status":   bson.M{"$in": []string{models.PropertyActive, models.PropertyDraft, models.PropertyInactive}},
	})
}

// Filter narrows a listing query. Zero values mean "no constraint".
type Filter struct {
	Status     string
	Category   string
	Location   string
	Search     string
	MinPrice   string
	MaxPrice   string
	Bedrooms   string
	Bathrooms  string
	Featured   *bool
	AgentID    primitive.ObjectID
	PublicOnly bool
}

func (f Filter) query() bson.M {
	q := bson.M{}
	if f.PublicOnly {
		q["status"] = models.PropertyActive
	} else if f.Status != "" {
		q["status"] = f.Status
	} else {
		q["status"] = bson.M{"$ne": models.PropertyDeleted}
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.Location != "" {
		q["location"] = bson.M{"$regex": f.Location, "$options": "i"}
	}
	if f.Search != "" {
		q["$text"] = bson.M{"$search": f.Search}
	}

	price := bson.M{}
	if v, err := strconv.ParseFloat(f.MinPrice, 64); err == nil {
		price["$gte"] = v
	}
	if v, err := strconv.ParseFloat(f.MaxPrice, 64); err == nil {
		price["$lte"] = v
	}
	if len(price) > 0 {
		q["price"] = price
	}
	if v, err := strconv.Atoi(f.Bedrooms); err == nil {
		q["bedrooms"] = bson.M{"$gte": v}
	}
	if v, err := strconv.Atoi(f.Bathrooms); err == nil {
		q["bathrooms"] = bson.M{"$gte": v}
	}
	if f.Featured != nil {
		q["featured"] = *f.Featured
	}
	if f.AgentID != primitive.NilObjectID {
		q["agent_id"] = f.AgentID
	}
	return q
}

// List returns one page of listings matching the filter, newest first,
// plus the total match count for page metadata.
func (s *Store) List(ctx context.Context, f Filter, page paging.Params) ([]models.Property, int64, error) {
	q := f.query()

	total, err := s.c.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(page.Limit64())
	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	props := []models.Property{}
	if err := cur.All(ctx, &props); err != nil {
		return nil, 0, err
	}
	return props, total, nil
}

// Landing returns the featured active listings for the landing page,
// newest first, capped at limit.
func (s *Store) Landing(ctx context.Context, limit int64) ([]models.Property, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{
		"status":   models.PropertyActive,
		"featured": true,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	props := []models.Property{}
	if err := cur.All(ctx, &props); err != nil {
		return nil, err
	}
	return props, nil
}
