package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Agent specializations.
const (
	SpecResidential    = "residential"
	SpecCommercial     = "commercial"
	SpecLuxury         = "luxury"
	SpecRental         = "rental"
	SpecInvestment     = "investment"
	SpecInteriorDesign = "interior-design"
	SpecExteriorDesign = "exterior-design"
)

// AgentSpecializations lists every accepted specialization.
var AgentSpecializations = []string{
	SpecResidential, SpecCommercial, SpecLuxury, SpecRental,
	SpecInvestment, SpecInteriorDesign, SpecExteriorDesign,
}

// Certification is a professional certification held by an agent.
type Certification struct {
	Name       string     `bson:"name" json:"name"`
	IssuedBy   string     `bson:"issued_by,omitempty" json:"issuedBy"`
	IssuedDate *time.Time `bson:"issued_date,omitempty" json:"issuedDate,omitempty"`
	ExpiryDate *time.Time `bson:"expiry_date,omitempty" json:"expiryDate,omitempty"`
}

// AgentSocialMedia holds an agent's public profiles.
type AgentSocialMedia struct {
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook"`
	Instagram string `bson:"instagram,omitempty" json:"instagram"`
	Website   string `bson:"website,omitempty" json:"website"`
}

// DaySchedule is an agent's availability window for one day.
type DaySchedule struct {
	Start     string `bson:"start,omitempty" json:"start"`
	End       string `bson:"end,omitempty" json:"end"`
	Available bool   `bson:"available" json:"available"`
}

// AgentWorkingHours is the weekly availability schedule.
type AgentWorkingHours struct {
	Monday    DaySchedule `bson:"monday" json:"monday"`
	Tuesday   DaySchedule `bson:"tuesday" json:"tuesday"`
	Wednesday DaySchedule `bson:"wednesday" json:"wednesday"`
	Thursday  DaySchedule `bson:"thursday" json:"thursday"`
	Friday    DaySchedule `bson:"friday" json:"friday"`
	Saturday  DaySchedule `bson:"saturday" json:"saturday"`
	Sunday    DaySchedule `bson:"sunday" json:"sunday"`
}

// Rating aggregates review scores for an agent.
type Rating struct {
	Average      float64 `bson:"average" json:"average"`
	TotalReviews int64   `bson:"total_reviews" json:"totalReviews"`
}

// Agent is a listing agent. Email is unique across agents; the profile
// image lives in the remote asset store.
type Agent struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Phone          string             `bson:"phone" json:"phone"`
	WhatsAppNumber string             `bson:"whatsapp_number,omitempty" json:"whatsappNumber"`
	Image          string             `bson:"image" json:"image"`
	Bio            string             `bson:"bio,omitempty" json:"bio"`
	Specialization string             `bson:"specialization" json:"specialization"`
	Experience     int                `bson:"experience" json:"experience"`
	Languages      []string           `bson:"languages,omitempty" json:"languages"`
	Certifications []Certification    `bson:"certifications,omitempty" json:"certifications"`
	SocialMedia    AgentSocialMedia   `bson:"social_media" json:"socialMedia"`
	WorkingHours   AgentWorkingHours  `bson:"working_hours" json:"workingHours"`
	Rating         Rating             `bson:"rating" json:"rating"`
	IsActive       bool               `bson:"is_active" json:"isActive"`

	CreatedBy primitive.ObjectID `bson:"created_by" json:"createdBy"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
