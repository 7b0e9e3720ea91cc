package validation

import (
	"strings"
	"testing"

	"standards-board-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func validProfile() model.ProfileData {
	return model.ProfileData{
		FullName:  "Asha Raman",
		RegNumber: "21bce1234",
		Email:     "asha@example.com",
		Phone:     "9876543210",
		Branch:    "CSE",
		Year:      "3rd Year",
	}
}

func TestValidateProfile_Valid(t *testing.T) {
	assert.Empty(t, ValidateProfile(validProfile()))
}

func TestValidateProfile_FieldErrors(t *testing.T) {
	p := model.ProfileData{
		FullName:  "A",
		RegNumber: "BCE21",
		Email:     "not-an-email",
		Phone:     "1234567890",
		Branch:    "",
		Year:      "5th Year",
	}

	errs := ValidateProfile(p)

	for _, field := range []string{"fullName", "regNumber", "email", "phone", "branch", "year"} {
		assert.Contains(t, errs, field)
	}
}

func TestValidateProfile_RegNumberCaseInsensitive(t *testing.T) {
	p := validProfile()
	p.RegNumber = " 21BcE1234 "
	assert.NotContains(t, ValidateProfile(p), "regNumber")
}

func TestValidatePositions_WordBoundary(t *testing.T) {
	pos := func(answer string) []model.PositionApplication {
		return []model.PositionApplication{{
			PositionID:   "secretary",
			PositionName: "Secretary",
			Answers:      []model.PositionAnswer{{Question: "Why?", Answer: answer}},
		}}
	}

	errs := ValidatePositions(pos(words(49)))
	require.Contains(t, errs, "position_0_answer_0")
	assert.Contains(t, errs["position_0_answer_0"], "currently 49 words")

	assert.Empty(t, ValidatePositions(pos(words(50))))
	assert.Empty(t, ValidatePositions(pos(words(500))))

	errs = ValidatePositions(pos(words(501)))
	require.Contains(t, errs, "position_0_answer_0")
	assert.Contains(t, errs["position_0_answer_0"], "Maximum 500 words allowed (current: 501)")
}

func TestValidatePositions_EmptyAnswer(t *testing.T) {
	errs := ValidatePositions([]model.PositionApplication{{
		PositionName: "Secretary",
		Answers:      []model.PositionAnswer{{Question: "Why?", Answer: "   "}},
	}})
	assert.Contains(t, errs["position_0_answer_0"], "Please provide an answer for Question 1")
}

func TestValidatePositions_Count(t *testing.T) {
	errs := ValidatePositions(nil)
	assert.Contains(t, errs["positions"], "at least one")

	four := make([]model.PositionApplication, 4)
	errs = ValidatePositions(four)
	assert.Contains(t, errs["positions"], "maximum of 3")
}

func TestValidateAgainstCatalog(t *testing.T) {
	catalog, err := model.NewCatalog([]model.Position{
		{ID: "lead", Title: "Lead", Questions: []string{"Q1", "Q2"}, IsActive: true},
		{ID: "old", Title: "Old", Questions: []string{"Q1"}, IsActive: false},
	})
	require.NoError(t, err)

	good := model.PositionApplication{PositionID: "lead", Answers: make([]model.PositionAnswer, 2)}
	assert.Empty(t, ValidateAgainstCatalog([]model.PositionApplication{good}, catalog))

	errs := ValidateAgainstCatalog([]model.PositionApplication{
		good,
		good,
		{PositionID: "old", Answers: make([]model.PositionAnswer, 1)},
		{PositionID: "missing"},
	}, catalog)
	assert.Contains(t, errs["position_1"], "more than once")
	assert.Contains(t, errs, "position_2")
	assert.Contains(t, errs, "position_3")

	short := model.PositionApplication{PositionID: "lead", Answers: make([]model.PositionAnswer, 1)}
	errs = ValidateAgainstCatalog([]model.PositionApplication{short}, catalog)
	assert.Contains(t, errs["position_0"], "requires 2 answers")
}

func TestValidateWordCount(t *testing.T) {
	ok, count, msg := ValidateWordCount(words(10), 5, 20)
	assert.True(t, ok)
	assert.Equal(t, 10, count)
	assert.Empty(t, msg)

	ok, _, msg = ValidateWordCount(words(3), 5, 20)
	assert.False(t, ok)
	assert.Contains(t, msg, "Minimum 5")

	ok, _, msg = ValidateWordCount(words(30), 5, 20)
	assert.False(t, ok)
	assert.Contains(t, msg, "Maximum 20")
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount("   "))
	assert.Equal(t, 3, WordCount(" one\ttwo\nthree "))
}
