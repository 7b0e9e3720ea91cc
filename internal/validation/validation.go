// Package validation checks applicant profile and position answers for completeness.
// The functions are pure and shared by the submission workflow and its HTTP handler.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"standards-board-backend/internal/model"
)

// Answer and selection limits
const (
	MinAnswerWords = 50
	MaxAnswerWords = 500
	MinPositions   = 1
	MaxPositions   = 3
)

var (
	regNumberPattern = regexp.MustCompile(`(?i)^\d{2}[A-Z]{3}\d{4}$`)
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern     = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// YearOptions are the accepted academic year values
var YearOptions = []string{"1st Year", "2nd Year", "3rd Year", "4th Year"}

// Errors maps a form field name to a message describing what is wrong with it
type Errors map[string]string

// WordCount counts whitespace separated words
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ValidateWordCount checks that text has between minWords and maxWords words inclusive.
// The returned message is empty when the text is valid.
func ValidateWordCount(text string, minWords, maxWords int) (bool, int, string) {
	count := WordCount(text)
	if count < minWords {
		return false, count, fmt.Sprintf("Minimum %d words required (current: %d)", minWords, count)
	}
	if count > maxWords {
		return false, count, fmt.Sprintf("Maximum %d words allowed (current: %d)", maxWords, count)
	}
	return true, count, ""
}

// ValidateProfile returns field errors for an incomplete or malformed profile
func ValidateProfile(p model.ProfileData) Errors {
	errs := Errors{}

	if len(strings.TrimSpace(p.FullName)) < 2 {
		errs["fullName"] = "Please enter your full name (at least 2 characters)"
	}
	if !regNumberPattern.MatchString(strings.TrimSpace(p.RegNumber)) {
		errs["regNumber"] = "Please enter a valid VIT registration number (e.g., 21BCE1234)"
	}
	if !emailPattern.MatchString(p.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if !phonePattern.MatchString(p.Phone) {
		errs["phone"] = "Please enter a valid 10-digit Indian mobile number (starting with 6-9)"
	}
	if len(strings.TrimSpace(p.Branch)) < 2 {
		errs["branch"] = "Please select your branch/department"
	}
	if !contains(YearOptions, p.Year) {
		errs["year"] = "Please select your current academic year"
	}

	return errs
}

// ValidatePositions returns field errors for the selected positions and their answers
func ValidatePositions(positions []model.PositionApplication) Errors {
	errs := Errors{}

	if len(positions) < MinPositions {
		errs["positions"] = "Please select at least one position to apply for"
		return errs
	}
	if len(positions) > MaxPositions {
		errs["positions"] = fmt.Sprintf("You can apply for a maximum of %d positions", MaxPositions)
		return errs
	}

	for pi, position := range positions {
		for ai, answer := range position.Answers {
			field := fmt.Sprintf("position_%d_answer_%d", pi, ai)
			ok, count, msg := ValidateWordCount(answer.Answer, MinAnswerWords, MaxAnswerWords)
			switch {
			case ok:
			case count == 0:
				errs[field] = fmt.Sprintf("Please provide an answer for Question %d in %s", ai+1, position.PositionName)
			case count < MinAnswerWords:
				errs[field] = fmt.Sprintf("Your answer for Question %d in %s needs at least %d words (currently %d words)",
					ai+1, position.PositionName, MinAnswerWords, count)
			default:
				errs[field] = fmt.Sprintf("Your answer for Question %d in %s is too long. %s", ai+1, position.PositionName, msg)
			}
		}
	}

	return errs
}

// ValidateAgainstCatalog checks that each selected position exists, is active, is picked once
// and that its answers line up with the catalog questions.
func ValidateAgainstCatalog(positions []model.PositionApplication, catalog *model.Catalog) Errors {
	errs := Errors{}
	seen := make(map[string]bool, len(positions))

	for pi, selected := range positions {
		field := fmt.Sprintf("position_%d", pi)

		p, ok := catalog.Get(selected.PositionID)
		if !ok || !p.IsActive {
			errs[field] = fmt.Sprintf("Unknown or closed position %q", selected.PositionID)
			continue
		}
		if seen[p.ID] {
			errs[field] = fmt.Sprintf("Position %s is selected more than once", p.Title)
			continue
		}
		seen[p.ID] = true

		if len(selected.Answers) != len(p.Questions) {
			errs[field] = fmt.Sprintf("%s requires %d answers, got %d", p.Title, len(p.Questions), len(selected.Answers))
		}
	}

	return errs
}

// ValidateApplication merges profile, position and catalog checks
func ValidateApplication(profile model.ProfileData, positions []model.PositionApplication, catalog *model.Catalog) Errors {
	errs := ValidateProfile(profile)
	for k, v := range ValidatePositions(positions) {
		errs[k] = v
	}
	if catalog != nil {
		for k, v := range ValidateAgainstCatalog(positions, catalog) {
			errs[k] = v
		}
	}
	return errs
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
