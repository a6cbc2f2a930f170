package models

import (
	"fmt"
	"regexp"
	"strings"

	validate "github.com/dalemusser/waffle/pantry/validate"
)

// FieldError describes a single validation violation. Validation collects
// every violation instead of stopping at the first so API clients can show
// all problems at once.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

// ValidationErrors is the aggregate of all violations for one write.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// OrNil returns the slice as an error, or nil when empty.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Social profile URL shapes, matching what the site will actually link to.
var (
	facebookRe  = regexp.MustCompile(`^https?://(www\.)?facebook\.com/.+`)
	twitterRe   = regexp.MustCompile(`^https?://(www\.)?(twitter\.com|x\.com)/.+`)
	instagramRe = regexp.MustCompile(`^https?://(www\.)?instagram\.com/.+`)
	linkedinRe  = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/.+`)
	youtubeRe   = regexp.MustCompile(`^https?://(www\.)?youtube\.com/.+`)
	phoneRe     = regexp.MustCompile(`^[+]?[1-9][\d]{0,15}$`)
	urlRe       = regexp.MustCompile(`^https?://\S+\.\S+`)
)

func checkLen(errs *ValidationErrors, field, val string, min, max int) {
	if len(val) < min {
		*errs = append(*errs, FieldError{field, fmt.Sprintf("must be at least %d characters", min)})
	} else if max > 0 && len(val) > max {
		*errs = append(*errs, FieldError{field, fmt.Sprintf("must not exceed %d characters", max)})
	}
}

func checkOptionalURL(errs *ValidationErrors, field, val string, re *regexp.Regexp) {
	if val != "" && !re.MatchString(val) {
		*errs = append(*errs, FieldError{field, "invalid URL"})
	}
}

func checkEnum(errs *ValidationErrors, field, val string, allowed []string) {
	if val == "" {
		return
	}
	for _, a := range allowed {
		if val == a {
			return
		}
	}
	*errs = append(*errs, FieldError{field, fmt.Sprintf("must be one of %s", strings.Join(allowed, ", "))})
}

// ValidateSocialLinks checks a team member's profile links.
func (s SocialLinks) Validate(prefix string) ValidationErrors {
	var errs ValidationErrors
	checkOptionalURL(&errs, prefix+".linkedin", s.LinkedIn, linkedinRe)
	checkOptionalURL(&errs, prefix+".twitter", s.Twitter, twitterRe)
	checkOptionalURL(&errs, prefix+".facebook", s.Facebook, facebookRe)
	checkOptionalURL(&errs, prefix+".instagram", s.Instagram, instagramRe)
	return errs
}

// Validate checks a team member before it is written into the aggregate.
func (m TeamMember) Validate() ValidationErrors {
	var errs ValidationErrors
	checkLen(&errs, "name", strings.TrimSpace(m.Name), 1, 100)
	checkLen(&errs, "position", strings.TrimSpace(m.Position), 1, 100)
	if m.Phone != "" && !phoneRe.MatchString(m.Phone) {
		errs = append(errs, FieldError{"phone", "invalid phone number format"})
	}
	errs = append(errs, m.SocialLinks.Validate("socialLinks")...)
	return errs
}

// Validate checks a partner before it is written into the aggregate.
func (p Partner) Validate() ValidationErrors {
	var errs ValidationErrors
	checkLen(&errs, "name", strings.TrimSpace(p.Name), 1, 100)
	checkOptionalURL(&errs, "website", p.Website, urlRe)
	return errs
}

// Validate checks the whole aggregate before persisting. Every violated
// field is reported, not just the first.
func (c Company) Validate() ValidationErrors {
	var errs ValidationErrors
	checkLen(&errs, "name", strings.TrimSpace(c.Name), 1, 100)
	checkLen(&errs, "about.vision", c.About.Vision, 0, 1000)
	checkLen(&errs, "about.mission", c.About.Mission, 0, 1000)

	checkOptionalURL(&errs, "socialMedia.facebook", c.SocialMedia.Facebook, facebookRe)
	checkOptionalURL(&errs, "socialMedia.twitter", c.SocialMedia.Twitter, twitterRe)
	checkOptionalURL(&errs, "socialMedia.instagram", c.SocialMedia.Instagram, instagramRe)
	checkOptionalURL(&errs, "socialMedia.linkedin", c.SocialMedia.LinkedIn, linkedinRe)
	checkOptionalURL(&errs, "socialMedia.youtube", c.SocialMedia.YouTube, youtubeRe)

	for i, a := range c.Contacts.Addresses {
		checkEnum(&errs, fmt.Sprintf("contacts.addresses[%d].type", i), a.Type,
			[]string{AddressMain, AddressBranch, AddressOffice})
	}
	for i, p := range c.Contacts.PhoneNumbers {
		checkEnum(&errs, fmt.Sprintf("contacts.phoneNumbers[%d].type", i), p.Type,
			[]string{PhoneMain, PhoneSales, PhoneSupport, PhoneEmergency})
	}
	for i, e := range c.Contacts.Emails {
		checkEnum(&errs, fmt.Sprintf("contacts.emails[%d].type", i), e.Type,
			[]string{EmailGeneral, EmailSales, EmailSupport, EmailCareers})
		if e.Email != "" && !validate.SimpleEmailValid(e.Email) {
			errs = append(errs, FieldError{fmt.Sprintf("contacts.emails[%d].email", i), "invalid email address"})
		}
	}

	for i, m := range c.Team {
		for _, fe := range m.Validate() {
			errs = append(errs, FieldError{fmt.Sprintf("team[%d].%s", i, fe.Field), fe.Message})
		}
	}
	for i, p := range c.Partners {
		for _, fe := range p.Validate() {
			errs = append(errs, FieldError{fmt.Sprintf("partners[%d].%s", i, fe.Field), fe.Message})
		}
	}
	return errs
}

// Validate checks an agent before create/update.
func (a Agent) Validate() ValidationErrors {
	var errs ValidationErrors
	checkLen(&errs, "name", strings.TrimSpace(a.Name), 1, 100)
	if !validate.SimpleEmailValid(a.Email) {
		errs = append(errs, FieldError{"email", "invalid email address"})
	}
	if strings.TrimSpace(a.Phone) == "" {
		errs = append(errs, FieldError{"phone", "phone is required"})
	}
	checkLen(&errs, "bio", a.Bio, 0, 1000)
	checkEnum(&errs, "specialization", a.Specialization, AgentSpecializations)
	return errs
}

// Validate checks a property before create/update.
func (p Property) Validate() ValidationErrors {
	var errs ValidationErrors
	checkLen(&errs, "title", strings.TrimSpace(p.Title), 1, 200)
	checkLen(&errs, "description", p.Description, 1, 2000)
	if strings.TrimSpace(p.Location) == "" {
		errs = append(errs, FieldError{"location", "location is required"})
	}
	if strings.TrimSpace(p.Area) == "" {
		errs = append(errs, FieldError{"area", "area is required"})
	}
	if p.Price < 0 {
		errs = append(errs, FieldError{"price", "must not be negative"})
	}
	if p.Bedrooms < 0 {
		errs = append(errs, FieldError{"bedrooms", "must not be negative"})
	}
	if p.Bathrooms < 0 {
		errs = append(errs, FieldError{"bathrooms", "must not be negative"})
	}
	checkEnum(&errs, "status", p.Status, PropertyStatuses)
	checkEnum(&errs, "category", p.Category, PropertyCategories)
	if p.Category == "" {
		errs = append(errs, FieldError{"category", "category is required"})
	}
	if len(p.Certifications) > MaxCertifications {
		errs = append(errs, FieldError{"propertyCertifications",
			fmt.Sprintf("cannot exceed %d items", MaxCertifications)})
	}
	return errs
}

// Validate checks a blog post before create/update.
func (b Blog) Validate() ValidationErrors {
	var errs ValidationErrors
	checkLen(&errs, "title", strings.TrimSpace(b.Title), 1, 200)
	if strings.TrimSpace(b.Content) == "" {
		errs = append(errs, FieldError{"content", "content is required"})
	}
	checkLen(&errs, "excerpt", strings.TrimSpace(b.Excerpt), 1, 300)
	if strings.TrimSpace(b.Author) == "" {
		errs = append(errs, FieldError{"author", "author is required"})
	}
	if strings.TrimSpace(b.Category) == "" {
		errs = append(errs, FieldError{"category", "category is required"})
	}
	checkEnum(&errs, "status", b.Status, BlogStatuses)
	if b.ReadTime < 1 {
		errs = append(errs, FieldError{"readTime", "must be at least 1"})
	}
	return errs
}

// Validate checks a quote request at submission time.
func (q QuoteRequest) Validate() ValidationErrors {
	var errs ValidationErrors
	checkLen(&errs, "fullName", strings.TrimSpace(q.FullName), 2, 100)
	if !validate.SimpleEmailValid(q.Email) {
		errs = append(errs, FieldError{"email", "invalid email address"})
	}
	if strings.TrimSpace(q.PhoneNumber) == "" {
		errs = append(errs, FieldError{"phoneNumber", "phone number is required"})
	}
	checkEnum(&errs, "projectType", q.ProjectType, QuoteProjectTypes)
	if q.ProjectType == "" {
		errs = append(errs, FieldError{"projectType", "project type is required"})
	}
	checkEnum(&errs, "budgetRange", q.BudgetRange, QuoteBudgetRanges)
	if q.BudgetRange == "" {
		errs = append(errs, FieldError{"budgetRange", "budget range is required"})
	}
	checkEnum(&errs, "timeline", q.Timeline, QuoteTimelines)
	if q.Timeline == "" {
		errs = append(errs, FieldError{"timeline", "timeline is required"})
	}
	checkLen(&errs, "projectDescription", strings.TrimSpace(q.ProjectDescription), 10, 2000)
	checkEnum(&errs, "propertyType", q.PropertyType, QuotePropertyTypes)
	checkEnum(&errs, "preferredContactMethod", q.PreferredContact, QuoteContactMethods)
	checkEnum(&errs, "status", q.Status, QuoteStatuses)
	checkEnum(&errs, "priority", q.Priority, QuotePriorities)
	if q.EstimatedAmount != nil && *q.EstimatedAmount < 0 {
		errs = append(errs, FieldError{"estimatedQuoteAmount", "must not be negative"})
	}
	return errs
}
