package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quote request project types.
var QuoteProjectTypes = []string{
	"interior-design", "exterior-design", "both-interior-exterior",
	"renovation", "new-construction", "commercial", "residential",
}

// Quote request budget ranges.
var QuoteBudgetRanges = []string{
	"under-10k", "10k-25k", "25k-50k", "50k-100k",
	"100k-250k", "250k-500k", "over-500k",
}

// Quote request timelines.
var QuoteTimelines = []string{
	"asap", "1-3-months", "3-6-months", "6-12-months", "over-1-year", "flexible",
}

// Quote request statuses.
var QuoteStatuses = []string{
	"new", "contacted", "in-progress", "quoted", "accepted", "rejected", "completed",
}

// Quote request priorities.
var QuotePriorities = []string{"low", "medium", "high", "urgent"}

// Property types a quote can concern.
var QuotePropertyTypes = []string{"residential", "commercial", "mixed-use", "other"}

// Contact methods a requester can prefer.
var QuoteContactMethods = []string{"email", "phone", "whatsapp"}

// QuoteNote is one internal note appended to a request. Notes are
// append-only; they are pushed by the store, never rewritten.
type QuoteNote struct {
	Content string             `bson:"content" json:"content"`
	AddedBy primitive.ObjectID `bson:"added_by" json:"addedBy"`
	AddedAt time.Time          `bson:"added_at" json:"addedAt"`
}

// Attachment is a file the requester supplied, stored remotely.
type Attachment struct {
	Name       string    `bson:"name" json:"name"`
	URL        string    `bson:"url" json:"url"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploadedAt"`
}

// QuoteRequest is a customer inquiry for design/construction work.
// Created publicly; managed by admins.
type QuoteRequest struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FullName           string              `bson:"full_name" json:"fullName"`
	Email              string              `bson:"email" json:"email"`
	PhoneNumber        string              `bson:"phone_number" json:"phoneNumber"`
	ProjectType        string              `bson:"project_type" json:"projectType"`
	BudgetRange        string              `bson:"budget_range" json:"budgetRange"`
	Timeline           string              `bson:"timeline" json:"timeline"`
	ProjectDescription string              `bson:"project_description" json:"projectDescription"`
	PropertyType       string              `bson:"property_type,omitempty" json:"propertyType"`
	PropertySize       string              `bson:"property_size,omitempty" json:"propertySize"`
	PreferredContact   string              `bson:"preferred_contact_method" json:"preferredContactMethod"`
	Status             string              `bson:"status" json:"status"`
	Priority           string              `bson:"priority" json:"priority"`
	AssignedTo         *primitive.ObjectID `bson:"assigned_to,omitempty" json:"assignedTo,omitempty"`
	Notes              []QuoteNote         `bson:"notes,omitempty" json:"notes"`
	FollowUpDate       *time.Time          `bson:"follow_up_date,omitempty" json:"followUpDate,omitempty"`
	EstimatedAmount    *float64            `bson:"estimated_quote_amount,omitempty" json:"estimatedQuoteAmount,omitempty"`
	Attachments        []Attachment        `bson:"attachments,omitempty" json:"attachments"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
