package forms

import "github.com/go-playground/validator/v10"

// formatValidator is safe for concurrent use and caches parsed tags.
var formatValidator = validator.New()

var formatTags = map[Format]string{
	FormatEmail: "email",
	FormatURL:   "url",
}

var defaultFormatMessages = map[Format]string{
	FormatEmail: "Invalid email",
	FormatURL:   "Invalid url",
}

func matchesFormat(f Format, s string) bool {
	tag, ok := formatTags[f]
	if !ok {
		return true
	}
	return formatValidator.Var(s, tag) == nil
}
