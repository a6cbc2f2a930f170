// internal/app/store/blogs/blogstore.go
package blogstore

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
	ErrNotFound      = errors.New("blog post not found")
	ErrDuplicateSlug = errors.New("a post with this slug already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("blogs")}
}

// Create inserts a new post. Slug and read time are derived here so every
// write path computes them the same way.
func (s *Store) Create(ctx context.Context, b models.Blog) (models.Blog, error) {
	now := time.Now().UTC()
	b.ID = primitive.NewObjectID()
	b.Slug = models.Slugify(b.Title, now)
	b.ReadTime = models.EstimateReadTime(b.Content)
	if b.Status == "" {
		b.Status = models.BlogDraft
	}
	if b.PublishDate.IsZero() {
		b.PublishDate = now
	}
	b.Views = 0
	b.Likes = 0
	b.CreatedAt = now
	b.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, b); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Blog{}, ErrDuplicateSlug
		}
		return models.Blog{}, err
	}
	return b, nil
}

// GetByID retrieves a post by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Blog, error) {
	var b models.Blog
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Blog{}, ErrNotFound
		}
		return models.Blog{}, err
	}
	return b, nil
}

// GetPublishedBySlug retrieves a post by slug, restricted to published
// posts whose publish date has passed. This is the public lookup.
func (s *Store) GetPublishedBySlug(ctx context.Context, slug string) (models.Blog, error) {
	var b models.Blog
	err := s.c.FindOne(ctx, bson.M{
		"slug":         slug,
		"status":       models.BlogPublished,
		"publish_date": bson.M{"$lte": time.Now().UTC()},
	}).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Blog{}, ErrNotFound
		}
		return models.Blog{}, err
	}
	return b, nil
}

// UpdateFields applies a pre-built $set document and returns the updated
// post. Callers that change the title must also set slug and read_time.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Blog, error) {
	if set == nil {
		set = bson.M{}
	}
	set["updated_at"] = time.Now().UTC()

	var b models.Blog
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Blog{}, ErrNotFound
		}
		if wafflemongo.IsDup(err) {
			return models.Blog{}, ErrDuplicateSlug
		}
		return models.Blog{}, err
	}
	return b, nil
}

// Delete removes a post by ID.
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

// IncrementViews bumps the view counter without touching updated_at.
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

// Like bumps the like counter and returns the new total.
func (s *Store) Like(ctx context.Context, id primitive.ObjectID) (int64, error) {
	var b models.Blog
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"likes": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return b.Likes, nil
}

// Filter narrows a post listing.
type Filter struct {
	Status     string
	Category   string
	Tag        string
	Featured   *bool
	PublicOnly bool
}

func (f Filter) query() bson.M {
	q := bson.M{}
	if f.PublicOnly {
		q["status"] = models.BlogPublished
		q["publish_date"] = bson.M{"$lte": time.Now().UTC()}
	} else if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.Tag != "" {
		q["tags"] = f.Tag
	}
	if f.Featured != nil {
		q["featured"] = *f.Featured
	}
	return q
}

// List returns one page of posts, newest publish date first, plus the
// total match count.
func (s *Store) List(ctx context.Context, f Filter, page paging.Params) ([]models.Blog, int64, error) {
	q := f.query()

	total, err := s.c.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "publish_date", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(page.Limit64())
	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	posts := []models.Blog{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
