// internal/app/store/quotes/quotestore.go
package quotestore

import (
	"context"
	"errors"
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

var ErrNotFound = errors.New("quote request not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("quote_requests")}
}

// Create inserts a new request with the public-submission defaults.
func (s *Store) Create(ctx context.Context, q models.QuoteRequest) (models.QuoteRequest, error) {
	now := time.Now().UTC()
	q.ID = primitive.NewObjectID()
	if q.Status == "" {
		q.Status = "new"
	}
	if q.Priority == "" {
		q.Priority = "medium"
	}
	q.Notes = nil
	q.CreatedAt = now
	q.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, q); err != nil {
		return models.QuoteRequest{}, err
	}
	return q, nil
}

// GetByID retrieves a request by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.QuoteRequest, error) {
	var q models.QuoteRequest
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.QuoteRequest{}, ErrNotFound
		}
		return models.QuoteRequest{}, err
	}
	return q, nil
}

// UpdateFields applies a pre-built $set document and returns the updated
// request.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (models.QuoteRequest, error) {
	if set == nil {
		set = bson.M{}
	}
	set["updated_at"] = time.Now().UTC()

	var q models.QuoteRequest
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&q)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.QuoteRequest{}, ErrNotFound
		}
		return models.QuoteRequest{}, err
	}
	return q, nil
}

// Delete removes a request by ID.
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

// AddNote appends one internal note. Notes are append-only; a targeted
// $push means concurrent note writers never lose each other's entries.
func (s *Store) AddNote(ctx context.Context, id primitive.ObjectID, note models.QuoteNote) (models.QuoteRequest, error) {
	note.AddedAt = time.Now().UTC()

	var q models.QuoteRequest
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"notes": note},
			"$set":  bson.M{"updated_at": note.AddedAt},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&q)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.QuoteRequest{}, ErrNotFound
		}
		return models.QuoteRequest{}, err
	}
	return q, nil
}

// Filter narrows a request listing.
type Filter struct {
	Status      string
	Priority    string
	ProjectType string
	Email       string
}

func (f Filter) query() bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Priority != "" {
		q["priority"] = f.Priority
	}
	if f.ProjectType != "" {
		q["project_type"] = f.ProjectType
	}
	if f.Email != "" {
		q["email"] = f.Email
	}
	return q
}

// List returns one page of requests, newest first, plus the total count.
func (s *Store) List(ctx context.Context, f Filter, page paging.Params) ([]models.QuoteRequest, int64, error) {
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

	reqs := []models.QuoteRequest{}
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

// Stats summarizes the pipeline for the admin dashboard.
type Stats struct {
	Total         int64                 `json:"total"`
	ByStatus      map[string]int64      `json:"byStatus"`
	ByPriority    map[string]int64      `json:"byPriority"`
	ByProjectType map[string]int64      `json:"byProjectType"`
	ByBudgetRange map[string]int64      `json:"byBudgetRange"`
	Recent        []models.QuoteRequest `json:"recent"`
}

type groupCount struct {
	ID    string `bson:"_id"`
	Count int64  `bson:"count"`
}

func (s *Store) groupBy(ctx context.Context, field string) (map[string]int64, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$" + field,
			"count": bson.M{"$sum": 1},
		}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []groupCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.ID] = r.Count
	}
	return out, nil
}

// GetStats aggregates request counts for the dashboard plus the five most
// recent submissions.
func (s *Store) GetStats(ctx context.Context) (Stats, error) {
	total, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return Stats{}, err
	}

	st := Stats{Total: total}
	for field, dst := range map[string]*map[string]int64{
		"status":       &st.ByStatus,
		"priority":     &st.ByPriority,
		"project_type": &st.ByProjectType,
		"budget_range": &st.ByBudgetRange,
	} {
		m, err := s.groupBy(ctx, field)
		if err != nil {
			return Stats{}, err
		}
		*dst = m
	}

	recent, _, err := s.List(ctx, Filter{}, paging.Params{Page: 1, Limit: 5})
	if err != nil {
		return Stats{}, err
	}
	st.Recent = recent
	return st, nil
}
