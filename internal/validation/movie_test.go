package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedValidator() *MovieValidator {
	return newMovieValidator(func() time.Time {
		return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	})
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"title":    "Inception",
		"year":     float64(2010),
		"director": "Nolan",
		"duration": float64(148),
		"poster":   "http://x/p.jpg",
		"genre":    []interface{}{"Sci-Fi"},
	}
}

func fields(t *testing.T, err error) map[string]string {
	t.Helper()
	var errs Errors
	require.ErrorAs(t, err, &errs)
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[fe.Field] = fe.Rule
	}
	return out
}

func TestValidateFull_Valid(t *testing.T) {
	mv := fixedValidator()

	in, err := mv.ValidateFull(validBody())
	require.NoError(t, err)
	assert.Equal(t, "Inception", in.Title)
	assert.Equal(t, 2010, in.Year)
	assert.Equal(t, "Nolan", in.Director)
	assert.Equal(t, 148, in.Duration)
	assert.Equal(t, "http://x/p.jpg", in.Poster)
	assert.Equal(t, []string{"Sci-Fi"}, in.Genre)
	assert.Zero(t, in.Rate, "rate defaults to 0 when absent")
}

func TestValidateFull_IgnoresUnknownFieldsAndClientID(t *testing.T) {
	mv := fixedValidator()
	body := validBody()
	body["id"] = "client-chosen"
	body["studio"] = "Warner"
	body["rate"] = 8.8

	in, err := mv.ValidateFull(body)
	require.NoError(t, err)
	assert.Equal(t, 8.8, in.Rate)
}

func TestValidateFull_Violations(t *testing.T) {
	mv := fixedValidator()

	tests := []struct {
		name  string
		edit  func(map[string]interface{})
		field string
		rule  string
	}{
		{"missing title", func(b map[string]interface{}) { delete(b, "title") }, "title", "required"},
		{"empty title", func(b map[string]interface{}) { b["title"] = "" }, "title", "min"},
		{"title wrong type", func(b map[string]interface{}) { b["title"] = float64(1) }, "title", "type"},
		{"year as string", func(b map[string]interface{}) { b["year"] = "2010" }, "year", "type"},
		{"fractional year", func(b map[string]interface{}) { b["year"] = 2010.5 }, "year", "type"},
		{"year too old", func(b map[string]interface{}) { b["year"] = float64(1899) }, "year", "releaseyear"},
		{"year too far ahead", func(b map[string]interface{}) { b["year"] = float64(2028) }, "year", "releaseyear"},
		{"zero duration", func(b map[string]interface{}) { b["duration"] = float64(0) }, "duration", "gt"},
		{"bad poster", func(b map[string]interface{}) { b["poster"] = "not a url" }, "poster", "url"},
		{"missing genre", func(b map[string]interface{}) { delete(b, "genre") }, "genre", "required"},
		{"empty genre", func(b map[string]interface{}) { b["genre"] = []interface{}{} }, "genre", "min"},
		{"genre not array", func(b map[string]interface{}) { b["genre"] = "Drama" }, "genre", "type"},
		{"unknown genre", func(b map[string]interface{}) { b["genre"] = []interface{}{"Drama", "Western"} }, "genre[1]", "genre"},
		{"genre item wrong type", func(b map[string]interface{}) { b["genre"] = []interface{}{float64(3)} }, "genre[0]", "type"},
		{"rate too high", func(b map[string]interface{}) { b["rate"] = float64(11) }, "rate", "lte"},
		{"negative rate", func(b map[string]interface{}) { b["rate"] = float64(-1) }, "rate", "gte"},
		{"null director", func(b map[string]interface{}) { b["director"] = nil }, "director", "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validBody()
			tt.edit(body)

			_, err := mv.ValidateFull(body)
			got := fields(t, err)
			assert.Equal(t, tt.rule, got[tt.field], "violations: %v", got)
		})
	}
}

func TestValidateFull_TypeErrorIsNotReportedTwice(t *testing.T) {
	mv := fixedValidator()
	body := validBody()
	body["genre"] = []interface{}{true}

	_, err := mv.ValidateFull(body)
	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 1)
	assert.Equal(t, "genre[0]", errs[0].Field)
}

func TestValidateFull_EmptyBodyListsEveryRequiredField(t *testing.T) {
	mv := fixedValidator()

	_, err := mv.ValidateFull(map[string]interface{}{})
	got := fields(t, err)
	for _, f := range []string{"title", "year", "director", "duration", "poster", "genre"} {
		assert.Equal(t, "required", got[f], f)
	}
	assert.NotContains(t, got, "rate")
}

func TestValidatePartial(t *testing.T) {
	mv := fixedValidator()

	t.Run("empty body is a no-op", func(t *testing.T) {
		patch, err := mv.ValidatePartial(map[string]interface{}{})
		require.NoError(t, err)
		assert.True(t, patch.IsEmpty())
	})

	t.Run("only supplied fields are set", func(t *testing.T) {
		patch, err := mv.ValidatePartial(map[string]interface{}{"year": float64(2011), "id": "ignored"})
		require.NoError(t, err)
		require.NotNil(t, patch.Year)
		assert.Equal(t, 2011, *patch.Year)
		assert.Nil(t, patch.Title)
		assert.Nil(t, patch.Genre)
		assert.Nil(t, patch.Rate)
	})

	t.Run("supplied fields are checked", func(t *testing.T) {
		_, err := mv.ValidatePartial(map[string]interface{}{
			"year":  float64(1500),
			"genre": []interface{}{},
			"title": "",
		})
		got := fields(t, err)
		assert.Equal(t, "releaseyear", got["year"])
		assert.Equal(t, "min", got["genre"])
		assert.Equal(t, "min", got["title"])
	})

	t.Run("zero rate is accepted", func(t *testing.T) {
		patch, err := mv.ValidatePartial(map[string]interface{}{"rate": float64(0)})
		require.NoError(t, err)
		require.NotNil(t, patch.Rate)
		assert.Zero(t, *patch.Rate)
	})
}

func TestErrors_Error(t *testing.T) {
	errs := Errors{{Field: "year", Rule: "type", Message: "expected integer, received string"}}
	assert.Equal(t, "invalid movie: year: expected integer, received string", errs.Error())
}
