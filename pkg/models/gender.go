package models

import (
	"fmt"
	"strings"
)

// Gender is the grammatical gender class a noun is graded against.
type Gender string

const (
	Masculine Gender = "masculine"
	Feminine  Gender = "feminine"
	Any       Gender = "any"
)

// genderSynonyms maps accepted spellings to their gender class. All
// normalization happens here, at parse time; grading only ever
// compares Gender values.
var genderSynonyms = map[string]Gender{
	"masculine": Masculine,
	"masc":      Masculine,
	"m":         Masculine,
	"el":        Masculine,
	"feminine":  Feminine,
	"fem":       Feminine,
	"f":         Feminine,
	"la":        Feminine,
	"any":       Any,
	"both":      Any,
	"neuter":    Any,
	"n":         Any,
}

// ParseGender resolves a raw label to its gender class, case-insensitively.
func ParseGender(s string) (Gender, error) {
	g, ok := genderSynonyms[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown gender %q", s)
	}
	return g, nil
}

// String returns the display label used in question keyboards.
func (g Gender) String() string {
	switch g {
	case Masculine:
		return "Masculine"
	case Feminine:
		return "Feminine"
	case Any:
		return "Any"
	}
	return string(g)
}

// Matches reports whether an answer parsed to class a grades as
// correct against g.
func (g Gender) Matches(a Gender) bool {
	return g == a
}

// Grade grades a submitted answer text against a noun's gender class.
// The text is normalized through ParseGender; the comparison itself is
// between gender values only. Text that names no gender class at all
// is simply a wrong answer.
func Grade(answer string, class Gender) Result {
	g, err := ParseGender(answer)
	if err != nil {
		return Incorrect
	}
	if class.Matches(g) {
		return Correct
	}
	return Incorrect
}
