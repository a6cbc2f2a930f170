// internal/app/features/company/patch.go
package company

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/imanprime/estatecms/internal/domain/models"
)

// profilePatch is the typed partial body for basic-info updates. Pointer
// fields distinguish "absent" from "present but zero": absent fields keep
// their stored value, present fields replace it. Arrays replace wholesale;
// there is no element-level merge outside the team/partner editors.
type profilePatch struct {
	Name        *string           `json:"name"`
	About       *aboutPatch       `json:"about"`
	SocialMedia *socialMediaPatch `json:"socialMedia"`
	Contacts    *contactsPatch    `json:"contacts"`
}

type aboutPatch struct {
	Story   *[]models.StoryChapter `json:"story"`
	Values  *[]models.CompanyValue `json:"values"`
	Vision  *string                `json:"vision"`
	Mission *string                `json:"mission"`
}

type socialMediaPatch struct {
	Facebook  *string `json:"facebook"`
	Twitter   *string `json:"twitter"`
	Instagram *string `json:"instagram"`
	LinkedIn  *string `json:"linkedin"`
	YouTube   *string `json:"youtube"`
}

type contactsPatch struct {
	Addresses    *[]models.Address     `json:"addresses"`
	PhoneNumbers *[]models.PhoneNumber `json:"phoneNumbers"`
	Emails       *[]models.EmailAddr   `json:"emails"`
	WorkingHours *models.WorkingHours  `json:"workingHours"`
}

// empty reports whether the patch carries no fields at all.
func (p profilePatch) empty() bool {
	return p.Name == nil && p.About == nil && p.SocialMedia == nil && p.Contacts == nil
}

// apply merges the patch into a copy of the aggregate so the result can be
// validated as a whole before anything is written.
func (p profilePatch) apply(c *models.Company) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.About != nil {
		if p.About.Story != nil {
			c.About.Story = *p.About.Story
		}
		if p.About.Values != nil {
			c.About.Values = *p.About.Values
		}
		if p.About.Vision != nil {
			c.About.Vision = *p.About.Vision
		}
		if p.About.Mission != nil {
			c.About.Mission = *p.About.Mission
		}
	}
	if p.SocialMedia != nil {
		if p.SocialMedia.Facebook != nil {
			c.SocialMedia.Facebook = *p.SocialMedia.Facebook
		}
		if p.SocialMedia.Twitter != nil {
			c.SocialMedia.Twitter = *p.SocialMedia.Twitter
		}
		if p.SocialMedia.Instagram != nil {
			c.SocialMedia.Instagram = *p.SocialMedia.Instagram
		}
		if p.SocialMedia.LinkedIn != nil {
			c.SocialMedia.LinkedIn = *p.SocialMedia.LinkedIn
		}
		if p.SocialMedia.YouTube != nil {
			c.SocialMedia.YouTube = *p.SocialMedia.YouTube
		}
	}
	if p.Contacts != nil {
		if p.Contacts.Addresses != nil {
			c.Contacts.Addresses = *p.Contacts.Addresses
		}
		if p.Contacts.PhoneNumbers != nil {
			c.Contacts.PhoneNumbers = *p.Contacts.PhoneNumbers
		}
		if p.Contacts.Emails != nil {
			c.Contacts.Emails = *p.Contacts.Emails
		}
		if p.Contacts.WorkingHours != nil {
			c.Contacts.WorkingHours = *p.Contacts.WorkingHours
		}
	}
}

// setFields translates the patch into dotted $set entries so untouched
// subfields are never rewritten. This is what makes concurrent partial
// updates of disjoint sections commute.
func (p profilePatch) setFields(set bson.M) {
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.About != nil {
		if p.About.Story != nil {
			set["about.story"] = *p.About.Story
		}
		if p.About.Values != nil {
			set["about.values"] = *p.About.Values
		}
		if p.About.Vision != nil {
			set["about.vision"] = *p.About.Vision
		}
		if p.About.Mission != nil {
			set["about.mission"] = *p.About.Mission
		}
	}
	if p.SocialMedia != nil {
		if p.SocialMedia.Facebook != nil {
			set["social_media.facebook"] = *p.SocialMedia.Facebook
		}
		if p.SocialMedia.Twitter != nil {
			set["social_media.twitter"] = *p.SocialMedia.Twitter
		}
		if p.SocialMedia.Instagram != nil {
			set["social_media.instagram"] = *p.SocialMedia.Instagram
		}
		if p.SocialMedia.LinkedIn != nil {
			set["social_media.linkedin"] = *p.SocialMedia.LinkedIn
		}
		if p.SocialMedia.YouTube != nil {
			set["social_media.youtube"] = *p.SocialMedia.YouTube
		}
	}
	if p.Contacts != nil {
		if p.Contacts.Addresses != nil {
			set["contacts.addresses"] = *p.Contacts.Addresses
		}
		if p.Contacts.PhoneNumbers != nil {
			set["contacts.phone_numbers"] = *p.Contacts.PhoneNumbers
		}
		if p.Contacts.Emails != nil {
			set["contacts.emails"] = *p.Contacts.Emails
		}
		if p.Contacts.WorkingHours != nil {
			set["contacts.working_hours"] = *p.Contacts.WorkingHours
		}
	}
}

// memberPatch is the typed partial body for team-member updates.
type memberPatch struct {
	Name        *string             `json:"name"`
	Position    *string             `json:"position"`
	Phone       *string             `json:"phone"`
	SocialLinks *models.SocialLinks `json:"socialLinks"`
}

func (p memberPatch) apply(m *models.TeamMember) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Position != nil {
		m.Position = *p.Position
	}
	if p.Phone != nil {
		m.Phone = *p.Phone
	}
	if p.SocialLinks != nil {
		m.SocialLinks = *p.SocialLinks
	}
}

// setFields returns plain member field names for the store's positional
// update.
func (p memberPatch) setFields(set bson.M) {
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Position != nil {
		set["position"] = *p.Position
	}
	if p.Phone != nil {
		set["phone"] = *p.Phone
	}
	if p.SocialLinks != nil {
		set["social_links"] = *p.SocialLinks
	}
}

// partnerPatch is the typed partial body for partner updates.
type partnerPatch struct {
	Name    *string `json:"name"`
	Website *string `json:"website"`
}

func (p partnerPatch) apply(pt *models.Partner) {
	if p.Name != nil {
		pt.Name = *p.Name
	}
	if p.Website != nil {
		pt.Website = *p.Website
	}
}

func (p partnerPatch) setFields(set bson.M) {
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Website != nil {
		set["website"] = *p.Website
	}
}
