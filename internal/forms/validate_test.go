package forms

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_TypeMismatches(t *testing.T) {
	child := MustSchema("child", []Field{{Name: "name", Kind: KindString}})
	s := MustSchema("types", []Field{
		{Name: "text", Kind: KindString},
		{Name: "count", Kind: KindIntFromString},
		{Name: "tags", Kind: KindListFromString},
		{Name: "flag", Kind: KindBool},
		{Name: "child", Kind: KindObject, Schema: child},
		{Name: "children", Kind: KindObjectList, Schema: child},
	})

	res := s.Validate(map[string]any{
		"text":     []any{"a"},
		"count":    true,
		"tags":     map[string]any{},
		"flag":     "true",
		"child":    "x",
		"children": map[string]any{},
	})

	require.False(t, res.Success())
	assert.Equal(t, map[string][]string{
		"text":     {"Expected string, received array"},
		"count":    {"Expected string, received boolean"},
		"tags":     {"Expected string, received object"},
		"flag":     {"Expected boolean, received string"},
		"child":    {"Expected object, received string"},
		"children": {"Expected array, received object"},
	}, res.Errors.ByPath())

	for _, e := range res.Errors {
		assert.Equal(t, CodeInvalidType, e.Code, e.Path)
	}
}

func TestValidate_NullIsAbsent(t *testing.T) {
	s := MustSchema("nulls", []Field{
		{Name: "required", Kind: KindString, Required: true},
		{Name: "optional", Kind: KindString},
		{Name: "flag", Kind: KindBool, Default: true},
	})

	res := s.Validate(map[string]any{"required": nil, "optional": nil, "flag": nil})
	require.False(t, res.Success())
	assert.Equal(t, FieldErrors{{Path: "required", Code: CodeMissing, Message: "Required"}}, res.Errors)

	res = s.Validate(map[string]any{"required": "x", "optional": nil, "flag": nil})
	require.True(t, res.Success())
	assert.Equal(t, Record{"required": "x", "flag": true}, res.Data)
}

func TestValidate_NilInput(t *testing.T) {
	res := CoverLetterSchema.Validate(nil)
	require.False(t, res.Success())
	assert.Equal(t, []string{"companyName", "jobTitle", "jobDescription"}, res.Errors.Paths())
}

func TestValidate_AccumulatesErrorsOnOneField(t *testing.T) {
	s := MustSchema("site", []Field{
		{Name: "homepage", Kind: KindString, MaxLength: 10, Format: FormatURL},
	})

	res := s.Validate(map[string]any{"homepage": "not a url at all"})
	require.False(t, res.Success())
	assert.Equal(t, []string{
		"String must contain at most 10 character(s)",
		"Invalid url",
	}, res.Errors.Messages("homepage"))
	assert.Equal(t, CodeBounds, res.Errors[0].Code)
	assert.Equal(t, CodeFormat, res.Errors[1].Code)
}

func TestValidate_EmptyStringSkipsLaterChecks(t *testing.T) {
	s := MustSchema("site", []Field{
		{Name: "email", Kind: KindString, NonEmpty: true, EmptyMessage: "Email is required", Format: FormatEmail},
	})

	res := s.Validate(map[string]any{"email": ""})
	assert.Equal(t, FieldErrors{{Path: "email", Code: CodeMissing, Message: "Email is required"}}, res.Errors)
}

func TestValidate_AcceptsNormalizedValues(t *testing.T) {
	s := MustSchema("normalized", []Field{
		{Name: "years", Kind: KindIntFromString, Range: &Range{Min: 0, Max: 50}},
		{Name: "tags", Kind: KindListFromString},
	})

	tests := []struct {
		name  string
		years any
		tags  any
	}{
		{name: "native", years: 7, tags: []string{" go", "rust ", ""}},
		{name: "json round trip", years: float64(7), tags: []any{"go", "rust"}},
		{name: "int64", years: int64(7), tags: "go,rust"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Validate(map[string]any{"years": tt.years, "tags": tt.tags})
			require.True(t, res.Success(), "errors: %v", res.Errors)
			assert.Equal(t, Record{"years": 7, "tags": []string{"go", "rust"}}, res.Data)
		})
	}

	res := s.Validate(map[string]any{"years": 7.5, "tags": []any{"go", 3}})
	require.False(t, res.Success())
	assert.Equal(t, map[string][]string{
		"years":   {"Expected integer, received float"},
		"tags[1]": {"Expected string, received number"},
	}, res.Errors.ByPath())

	res = s.Validate(map[string]any{"years": float64(60)})
	assert.Equal(t, []string{"Number must be less than or equal to 50"}, res.Errors.Messages("years"))
}

func TestValidate_RefinementWaitsForItsObject(t *testing.T) {
	calls := 0
	s := MustSchema("pair", []Field{
		{Name: "a", Kind: KindString, Required: true},
		{Name: "b", Kind: KindString, Required: true},
	}, Refinement{
		Path:    "b",
		Message: "b must equal a",
		Check: func(r Record) bool {
			calls++
			return r["a"] == r["b"]
		},
	}, Refinement{
		Path:    "a",
		Message: "a must not be x",
		Check:   func(r Record) bool { return r["a"] != "x" },
	})

	res := s.Validate(map[string]any{"a": "x"})
	assert.Equal(t, []string{"b"}, res.Errors.Paths())
	assert.Zero(t, calls)

	res = s.Validate(map[string]any{"a": "x", "b": "y"})
	assert.Equal(t, FieldErrors{
		{Path: "b", Code: CodeCrossField, Message: "b must equal a"},
		{Path: "a", Code: CodeCrossField, Message: "a must not be x"},
	}, res.Errors)
	assert.Equal(t, 1, calls)
}

func TestValidate_NestedRefinementIsIndependentOfParent(t *testing.T) {
	unfinished := validEntry()
	delete(unfinished, "endDate")

	in := validResume()
	in["summary"] = ""
	in["experience"] = []any{unfinished}

	res := ResumeSchema.Validate(in)
	assert.Equal(t, map[string][]string{
		"summary":               {"Summary is required"},
		"experience[0].endDate": {EndDateRequiredMessage},
	}, res.Errors.ByPath())
}

func TestValidate_ConcurrentCallers(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := validResume()
			if i%2 == 0 {
				in["education"] = []any{}
			}
			res := ResumeSchema.Validate(in)
			assert.Equal(t, i%2 != 0, res.Success())
		}(i)
	}
	wg.Wait()
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	in := map[string]any{
		"industry":    "tech",
		"subIndustry": "backend",
		"experience":  "5",
		"skills":      "go, rust",
	}
	OnboardingSchema.Validate(in)
	assert.Equal(t, "5", in["experience"])
	assert.Equal(t, "go, rust", in["skills"])
}

func TestResult_Err(t *testing.T) {
	ok := CoverLetterSchema.Validate(map[string]any{"companyName": "A", "jobTitle": "B", "jobDescription": "C"})
	assert.NoError(t, ok.Err())

	bad := CoverLetterSchema.Validate(map[string]any{"companyName": "", "jobTitle": "B", "jobDescription": "C"})
	err := bad.Err()
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, FormCoverLetter, ve.Form)
	assert.True(t, strings.HasPrefix(err.Error(), "cover_letter validation failed:"))
	assert.Contains(t, err.Error(), "1. companyName: Company name is required")
}

func TestResult_MarshalJSON(t *testing.T) {
	ok := OnboardingSchema.Validate(map[string]any{
		"industry":    "tech",
		"subIndustry": "backend",
		"experience":  "5",
		"skills":      "go, rust, ",
	})
	data, err := json.Marshal(ok)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": true,
		"data": {"industry": "tech", "subIndustry": "backend", "experience": 5, "skills": ["go", "rust"]}
	}`, string(data))

	bad := CoverLetterSchema.Validate(map[string]any{"jobTitle": "Eng", "jobDescription": "..."})
	data, err = json.Marshal(bad)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success": false, "errors": {"companyName": ["Required"]}}`, string(data))
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{in: "42", want: 42, ok: true},
		{in: "\t 8", want: 8, ok: true},
		{in: "-0", want: 0, ok: true},
		{in: "3e2", want: 3, ok: true},
		{in: "", ok: false},
		{in: "-", ok: false},
		{in: "x1", ok: false},
		{in: " . 5", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseLeadingInt(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
