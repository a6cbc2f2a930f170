// internal/app/store/company/companystore.go
package companystore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/imanprime/estatecms/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound        = errors.New("company profile not found")
	ErrMemberNotFound  = errors.New("team member not found")
	ErrPartnerNotFound = errors.New("partner not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("companies")}
}

// GetActive returns the single active company profile.
func (s *Store) GetActive(ctx context.Context) (models.Company, error) {
	var c models.Company
	err := s.c.FindOne(ctx, bson.M{"is_active": true}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Company{}, ErrNotFound
		}
		return models.Company{}, err
	}
	return c, nil
}

// EnsureActive returns the active profile, creating the default document on
// first use. Two concurrent first writes race on the unique partial index;
// the loser re-reads the winner's document instead of failing.
func (s *Store) EnsureActive(ctx context.Context, updatedBy primitive.ObjectID) (models.Company, error) {
	c, err := s.GetActive(ctx)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.Company{}, err
	}

	fresh := models.NewCompany(updatedBy)
	if _, err := s.c.InsertOne(ctx, fresh); err != nil {
		if wafflemongo.IsDup(err) {
			// Another writer created the active profile first.
			return s.GetActive(ctx)
		}
		return models.Company{}, err
	}
	return fresh, nil
}

// UpdateFields applies a pre-merged $set document to the profile and
// returns the updated aggregate. Callers build set from the partial
// request body; this method only stamps updated_at/updated_by.
func (s *Store) UpdateFields(ctx context.Context, id, updatedBy primitive.ObjectID, set bson.M) (models.Company, error) {
	if set == nil {
		set = bson.M{}
	}
	set["updated_at"] = time.Now().UTC()
	set["updated_by"] = updatedBy

	var c models.Company
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Company{}, ErrNotFound
		}
		return models.Company{}, err
	}
	return c, nil
}

/* -------------------------------------------------------------------------- */
/* Team members                                                               */
/* -------------------------------------------------------------------------- */

// PushTeamMember appends a member to the team array. The push is a targeted
// update so concurrent writers editing other members are never overwritten.
func (s *Store) PushTeamMember(ctx context.Context, companyID, updatedBy primitive.ObjectID, m models.TeamMember) (models.Company, error) {
	var c models.Company
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": companyID},
		bson.M{
			"$push": bson.M{"team": m},
			"$set":  bson.M{"updated_at": time.Now().UTC(), "updated_by": updatedBy},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Company{}, ErrNotFound
		}
		return models.Company{}, err
	}
	return c, nil
}

// UpdateTeamMember sets the given fields on one embedded member via the
// positional operator. fields holds plain member field names (name,
// position, phone, image, social_links).
func (s *Store) UpdateTeamMember(ctx context.Context, companyID, memberID, updatedBy primitive.ObjectID, fields bson.M) (models.Company, error) {
	set := bson.M{
		"updated_at": time.Now().UTC(),
		"updated_by": updatedBy,
	}
	for k, v := range fields {
		set["team.$."+k] = v
	}

	var c models.Company
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": companyID, "team._id": memberID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Company{}, ErrMemberNotFound
		}
		return models.Company{}, err
	}
	return c, nil
}

// PullTeamMember removes one member by id. Removing an already-removed
// member reports ErrMemberNotFound so deletes are not silently idempotent.
func (s *Store) PullTeamMember(ctx context.Context, companyID, memberID, updatedBy primitive.ObjectID) (models.Company, error) {
	var c models.Company
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": companyID, "team._id": memberID},
		bson.M{
			"$pull": bson.M{"team": bson.M{"_id": memberID}},
			"$set":  bson.M{"updated_at": time.Now().UTC(), "updated_by": updatedBy},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Company{}, ErrMemberNotFound
		}
		return models.Company{}, err
	}
	return c, nil
}

/* -------------------------------------------------------------------------- */
/* Partners                                                                   */
/* -------------------------------------------------------------------------- */

// PushPartner appends a partner to the partners array.
func (s *Store) PushPartner(ctx context.Context, companyID, updatedBy primitive.ObjectID, p models.Partner) (models.Company, error) {
	var c models.Company
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": companyID},
		bson.M{
			"$push": bson.M{"partners": p},
			"$set":  bson.M{"updated_at": time.Now().UTC(), "updated_by": updatedBy},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Company{}, ErrNotFound
		}
		return models.Company{}, err
	}
	return c, nil
}

// UpdatePartner sets the given fields on one embedded partner. fields holds
// plain partner field names (name, website, logo).
func (s *Store) UpdatePartner(ctx context.Context, companyID, partnerID, updatedBy primitive.ObjectID, fields bson.M) (models.Company, error) {
	set := bson.M{
		"updated_at": time.Now().UTC(),
		"updated_by": updatedBy,
	}
	for k, v := range fields {
		set["partners.$."+k] = v
	}

	var c models.Company
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": companyID, "partners._id": partnerID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Company{}, ErrPartnerNotFound
		}
		return models.Company{}, err
	}
	return c, nil
}

// PullPartner removes one partner by id.
func (s *Store) PullPartner(ctx context.Context, companyID, partnerID, updatedBy primitive.ObjectID) (models.Company, error) {
	var c models.Company
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": companyID, "partners._id": partnerID},
		bson.M{
			"$pull": bson.M{"partners": bson.M{"_id": partnerID}},
			"$set":  bson.M{"updated_at": time.Now().UTC(), "updated_by": updatedBy},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Company{}, ErrPartnerNotFound
		}
		return models.Company{}, err
	}
	return c, nil
}
