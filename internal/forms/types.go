package forms

// Onboarding is a validated onboarding submission.
type Onboarding struct {
	Industry    string   `json:"industry"`
	SubIndustry string   `json:"subIndustry"`
	Bio         string   `json:"bio,omitempty"`
	Experience  int      `json:"experience"`
	Skills      []string `json:"skills"`
}

// Contact is a validated contact form submission.
type Contact struct {
	Email    string `json:"email"`
	Mobile   string `json:"mobile,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// Entry is a validated resume line item (experience, education or project).
type Entry struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate,omitempty"`
	Description  string `json:"description"`
	Current      bool   `json:"current"`
}

// Resume is a validated resume builder submission.
type Resume struct {
	ContactInfo    Contact `json:"contactInfo"`
	Summary        string  `json:"summary"`
	Skills         string  `json:"skills"`
	Experience     []Entry `json:"experience"`
	Education      []Entry `json:"education"`
	Projects       []Entry `json:"projects,omitempty"`
	JobDescription string  `json:"jobDescription,omitempty"`
}

// CoverLetter is a validated cover letter generation request.
type CoverLetter struct {
	CompanyName    string `json:"companyName"`
	JobTitle       string `json:"jobTitle"`
	JobDescription string `json:"jobDescription"`
}

// ParseOnboarding validates input and decodes it into an Onboarding.
func ParseOnboarding(input map[string]any) (*Onboarding, error) {
	return parseInto[Onboarding](OnboardingSchema, input)
}

// ParseContact validates input and decodes it into a Contact.
func ParseContact(input map[string]any) (*Contact, error) {
	return parseInto[Contact](ContactSchema, input)
}

// ParseEntry validates input and decodes it into an Entry.
func ParseEntry(input map[string]any) (*Entry, error) {
	return parseInto[Entry](EntrySchema, input)
}

// ParseResume validates input and decodes it into a Resume.
func ParseResume(input map[string]any) (*Resume, error) {
	return parseInto[Resume](ResumeSchema, input)
}

// ParseCoverLetter validates input and decodes it into a CoverLetter.
func ParseCoverLetter(input map[string]any) (*CoverLetter, error) {
	return parseInto[CoverLetter](CoverLetterSchema, input)
}

func parseInto[T any](s *Schema, input map[string]any) (*T, error) {
	res := s.Validate(input)
	if err := res.Err(); err != nil {
		return nil, err
	}
	var out T
	if err := res.Data.Decode(&out); err != nil {
		return nil, &DecodeError{Form: s.name, Cause: err}
	}
	return &out, nil
}
