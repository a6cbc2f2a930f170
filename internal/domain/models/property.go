package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property listing status values.
const (
	PropertyDraft    = "draft"
	PropertyActive   = "active"
	PropertyInactive = "inactive"
	PropertyDeleted  = "deleted"
)

// Property listing categories.
const (
	CategoryResidential = "residential"
	CategoryCommercial  = "commercial"
	CategoryLuxury      = "luxury"
	CategoryRental      = "rental"
	CategoryInvestment  = "investment"
)

// PropertyStatuses lists every accepted listing status.
var PropertyStatuses = []string{PropertyDraft, PropertyActive, PropertyInactive, PropertyDeleted}

// PropertyCategories lists every accepted listing category.
var PropertyCategories = []string{CategoryResidential, CategoryCommercial, CategoryLuxury, CategoryRental, CategoryInvestment}

// MaxCertifications bounds the property_certifications array.
const MaxCertifications = 20

// FloorPlan is a named floor-plan image attached to a property.
type FloorPlan struct {
	Name  string `bson:"name" json:"name"`
	Image string `bson:"image" json:"image"`
}

// Coordinates is an optional map pin for a property.
type Coordinates struct {
	Lat float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng float64 `bson:"lng,omitempty" json:"lng,omitempty"`
}

// Property is one real-estate listing. The cover image is required; gallery
// images and floor plans are optional. Every image URL points at the remote
// asset store and is deleted there when replaced or when the listing is
// removed.
type Property struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Location    string             `bson:"location" json:"location"`
	Price       float64            `bson:"price" json:"price"`
	Bedrooms    int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms   int                `bson:"bathrooms" json:"bathrooms"`
	Parking     bool               `bson:"parking" json:"parking"`
	Area        string             `bson:"area" json:"area"`

	Image  string   `bson:"image" json:"image"`
	Images []string `bson:"images,omitempty" json:"images"`

	Amenities      []string    `bson:"amenities,omitempty" json:"amenities"`
	Status         string      `bson:"status" json:"status"`
	Category       string      `bson:"category" json:"category"`
	VirtualTour    string      `bson:"virtual_tour,omitempty" json:"virtualTour"`
	FloorPlans     []FloorPlan `bson:"floor_plans,omitempty" json:"floorPlans"`
	Certifications []string    `bson:"property_certifications,omitempty" json:"propertyCertifications"`
	Featured       bool        `bson:"featured" json:"featured"`
	Views          int64       `bson:"views" json:"views"`
	Coordinates    *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`

	AgentID   primitive.ObjectID `bson:"agent_id" json:"agentId"`
	CreatedBy primitive.ObjectID `bson:"created_by" json:"createdBy"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// AssetURLs returns every asset-store URL referenced by the listing.
func (p Property) AssetURLs() []string {
	urls := make([]string, 0, 1+len(p.Images)+len(p.FloorPlans))
	if p.Image != "" {
		urls = append(urls, p.Image)
	}
	urls = append(urls, p.Images...)
	for _, fp := range p.FloorPlans {
		if fp.Image != "" {
			urls = append(urls, fp.Image)
		}
	}
	return urls
}
