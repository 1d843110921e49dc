package forms

import "sort"

// Registered form names.
const (
	FormOnboarding  = "onboarding"
	FormContact     = "contact"
	FormEntry       = "entry"
	FormResume      = "resume"
	FormCoverLetter = "cover_letter"
)

// EndDateRequiredMessage is reported at endDate for finished entries without one.
const EndDateRequiredMessage = "End date is required unless this is your current position"

// OnboardingSchema validates the profile collected on first sign-in.
var OnboardingSchema = MustSchema(FormOnboarding, []Field{
	requiredText("industry", "Please select an industry"),
	requiredText("subIndustry", "Please select a specialization"),
	{Name: "bio", Kind: KindString, MaxLength: 500},
	{
		Name:           "experience",
		Kind:           KindIntFromString,
		Required:       true,
		MissingMessage: "Please enter years of experience",
		NonEmpty:       true,
		EmptyMessage:   "Please enter years of experience",
		Range: &Range{
			Min:        0,
			Max:        50,
			MinMessage: "Experience must be at least 0 years",
			MaxMessage: "Experience cannot exceed 50 years",
		},
	},
	{
		Name:           "skills",
		Kind:           KindListFromString,
		Required:       true,
		MissingMessage: "Please provide your skills",
		NonEmpty:       true,
		EmptyMessage:   "Please provide your skills",
	},
})

// ContactSchema validates the standalone contact form. Only email is
// constrained; mobile, linkedin and twitter are free text here, unlike the
// resume's contactInfo where linkedin and twitter must be URLs.
var ContactSchema = MustSchema(FormContact, []Field{
	{Name: "email", Kind: KindString, Required: true, Format: FormatEmail, FormatMessage: "Invalid email address"},
	{Name: "mobile", Kind: KindString},
	{Name: "linkedin", Kind: KindString},
	{Name: "twitter", Kind: KindString},
})

// EntrySchema validates one experience, education or project row.
var EntrySchema = MustSchema(FormEntry, []Field{
	nonEmptyText("title", "Title is required"),
	nonEmptyText("organization", "Organization is required"),
	nonEmptyText("startDate", "Start date is required"),
	{Name: "endDate", Kind: KindString},
	nonEmptyText("description", "Description is required"),
	{Name: "current", Kind: KindBool, Default: false},
}, Refinement{
	Path:    "endDate",
	Message: EndDateRequiredMessage,
	Check: func(r Record) bool {
		current, _ := r["current"].(bool)
		endDate, _ := r["endDate"].(string)
		return current || endDate != ""
	},
})

var resumeContactSchema = MustSchema("contact_info", []Field{
	{Name: "email", Kind: KindString, Format: FormatEmail},
	{Name: "mobile", Kind: KindString},
	{Name: "linkedin", Kind: KindString, Format: FormatURL},
	{Name: "twitter", Kind: KindString, Format: FormatURL},
})

// ResumeSchema validates the resume builder form.
var ResumeSchema = MustSchema(FormResume, []Field{
	{Name: "contactInfo", Kind: KindObject, Required: true, Schema: resumeContactSchema},
	nonEmptyText("summary", "Summary is required"),
	nonEmptyText("skills", "Skills are required"),
	{
		Name:            "experience",
		Kind:            KindObjectList,
		Required:        true,
		Schema:          EntrySchema,
		MinItems:        1,
		MinItemsMessage: "At least one experience entry is required",
	},
	{
		Name:            "education",
		Kind:            KindObjectList,
		Required:        true,
		Schema:          EntrySchema,
		MinItems:        1,
		MinItemsMessage: "At least one education entry is required",
	},
	{Name: "projects", Kind: KindObjectList, Schema: EntrySchema},
	{Name: "jobDescription", Kind: KindString},
})

// CoverLetterSchema validates a cover letter generation request.
var CoverLetterSchema = MustSchema(FormCoverLetter, []Field{
	nonEmptyText("companyName", "Company name is required"),
	nonEmptyText("jobTitle", "Job title is required"),
	nonEmptyText("jobDescription", "Job description is required"),
})

var registry = map[string]*Schema{
	FormOnboarding:  OnboardingSchema,
	FormContact:     ContactSchema,
	FormEntry:       EntrySchema,
	FormResume:      ResumeSchema,
	FormCoverLetter: CoverLetterSchema,
}

// Lookup returns the registered schema for a form name.
func Lookup(name string) (*Schema, bool) {
	s, ok := registry[name]
	return s, ok
}

// Names returns the registered form names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// requiredText is a required string whose absence and emptiness share one message.
func requiredText(name, msg string) Field {
	return Field{Name: name, Kind: KindString, Required: true, MissingMessage: msg, NonEmpty: true, EmptyMessage: msg}
}

// nonEmptyText is a required string that reports the generic message when
// absent and msg when empty.
func nonEmptyText(name, msg string) Field {
	return Field{Name: name, Kind: KindString, Required: true, NonEmpty: true, EmptyMessage: msg}
}
