package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCompanyName is used when the active company document is created
// lazily on the first admin write.
const DefaultCompanyName = "ImanPrime"

// Company is the single aggregate document describing the company itself:
// basic profile, the about section, the team, partner logos, contact
// channels, and social media links. Team members and partners are embedded
// sub-documents owned by the aggregate; they have no collection of their own.
//
// Exactly one company document has is_active=true at any time. That invariant
// is enforced by a unique partial index (see system/indexes), not by
// application-level check-then-act.
type Company struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
	Logo string             `bson:"logo,omitempty" json:"logo"`

	About       About        `bson:"about" json:"about"`
	Team        []TeamMember `bson:"team" json:"team"`
	Partners    []Partner    `bson:"partners" json:"partners"`
	Contacts    Contacts     `bson:"contacts" json:"contacts"`
	SocialMedia SocialMedia  `bson:"social_media" json:"socialMedia"`

	IsActive  bool               `bson:"is_active" json:"isActive"`
	UpdatedBy primitive.ObjectID `bson:"updated_by,omitempty" json:"updatedBy"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// About holds the narrative sections of the company profile.
// Story chapters and values keep their insertion order.
type About struct {
	Story   []StoryChapter `bson:"story" json:"story"`
	Values  []CompanyValue `bson:"values" json:"values"`
	Vision  string         `bson:"vision" json:"vision"`
	Mission string         `bson:"mission" json:"mission"`
}

// StoryChapter is one titled block of the company story.
type StoryChapter struct {
	Title   string `bson:"title" json:"title"`
	Content string `bson:"content" json:"content"`
}

// CompanyValue is one named value statement.
type CompanyValue struct {
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`
}

// TeamMember is an embedded team entry. The ID is generated when the member
// is added and never reused; display order is insertion order.
type TeamMember struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Position    string             `bson:"position" json:"position"`
	Phone       string             `bson:"phone,omitempty" json:"phone"`
	Image       string             `bson:"image,omitempty" json:"image"`
	SocialLinks SocialLinks        `bson:"social_links" json:"socialLinks"`
}

// SocialLinks are the per-person social profiles shown on the team page.
type SocialLinks struct {
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook"`
	Instagram string `bson:"instagram,omitempty" json:"instagram"`
}

// Partner is an embedded partner-company entry.
type Partner struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Website string             `bson:"website,omitempty" json:"website"`
	Logo    string             `bson:"logo,omitempty" json:"logo"`
}

// Contacts groups every way of reaching the company.
type Contacts struct {
	Addresses    []Address     `bson:"addresses" json:"addresses"`
	PhoneNumbers []PhoneNumber `bson:"phone_numbers" json:"phoneNumbers"`
	Emails       []EmailAddr   `bson:"emails" json:"emails"`
	WorkingHours WorkingHours  `bson:"working_hours" json:"workingHours"`
}

// Address kinds accepted by validation.
const (
	AddressMain   = "main"
	AddressBranch = "branch"
	AddressOffice = "office"
)

// Address is one physical location.
type Address struct {
	Type    string `bson:"type" json:"type"`
	Address string `bson:"address,omitempty" json:"address"`
	City    string `bson:"city,omitempty" json:"city"`
	State   string `bson:"state,omitempty" json:"state"`
	ZipCode string `bson:"zip_code,omitempty" json:"zipCode"`
	Country string `bson:"country,omitempty" json:"country"`
}

// Phone number kinds accepted by validation.
const (
	PhoneMain      = "main"
	PhoneSales     = "sales"
	PhoneSupport   = "support"
	PhoneEmergency = "emergency"
)

// PhoneNumber is one published phone line.
type PhoneNumber struct {
	Type   string `bson:"type" json:"type"`
	Number string `bson:"number,omitempty" json:"number"`
	Label  string `bson:"label,omitempty" json:"label"`
}

// Email kinds accepted by validation.
const (
	EmailGeneral = "general"
	EmailSales   = "sales"
	EmailSupport = "support"
	EmailCareers = "careers"
)

// EmailAddr is one published email contact.
type EmailAddr struct {
	Type  string `bson:"type" json:"type"`
	Email string `bson:"email,omitempty" json:"email"`
	Label string `bson:"label,omitempty" json:"label"`
}

// DayHours is the open/close pair for a single day; empty strings mean closed.
type DayHours struct {
	Open  string `bson:"open,omitempty" json:"open"`
	Close string `bson:"close,omitempty" json:"close"`
}

// WorkingHours is the fixed seven-day schedule.
type WorkingHours struct {
	Monday    DayHours `bson:"monday" json:"monday"`
	Tuesday   DayHours `bson:"tuesday" json:"tuesday"`
	Wednesday DayHours `bson:"wednesday" json:"wednesday"`
	Thursday  DayHours `bson:"thursday" json:"thursday"`
	Friday    DayHours `bson:"friday" json:"friday"`
	Saturday  DayHours `bson:"saturday" json:"saturday"`
	Sunday    DayHours `bson:"sunday" json:"sunday"`
}

// SocialMedia holds the company-level social profiles.
type SocialMedia struct {
	Facebook  string `bson:"facebook,omitempty" json:"facebook"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter"`
	Instagram string `bson:"instagram,omitempty" json:"instagram"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin"`
	YouTube   string `bson:"youtube,omitempty" json:"youtube"`
}

// NewCompany returns the default aggregate created on first admin write.
func NewCompany(updatedBy primitive.ObjectID) Company {
	now := time.Now().UTC()
	return Company{
		ID:        primitive.NewObjectID(),
		Name:      DefaultCompanyName,
		Team:      []TeamMember{},
		Partners:  []Partner{},
		IsActive:  true,
		UpdatedBy: updatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FindTeamMember returns the index of the member with the given id, or -1.
func (c Company) FindTeamMember(id primitive.ObjectID) int {
	for i, m := range c.Team {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// FindPartner returns the index of the partner with the given id, or -1.
func (c Company) FindPartner(id primitive.ObjectID) int {
	for i, p := range c.Partners {
		if p.ID == id {
			return i
		}
	}
	return -1
}
