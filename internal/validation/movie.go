package validation

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"movieapi/internal/models"

	"github.com/go-playground/validator/v10"
)

// MinYear is the earliest accepted release year.
const MinYear = 1900

// MaxRate is the upper bound of a movie rating.
const MaxRate = 10

// FieldError describes a single constraint violated by a field of the body.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Errors is the list of violations found in a movie body.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "invalid movie: " + strings.Join(parts, "; ")
}

// createMovieRequest mirrors the movie body for full validation.
type createMovieRequest struct {
	Title    *string  `json:"title" validate:"required,min=1"`
	Year     *int     `json:"year" validate:"required,releaseyear"`
	Director *string  `json:"director" validate:"required,min=1"`
	Duration *int     `json:"duration" validate:"required,gt=0"`
	Poster   *string  `json:"poster" validate:"required,url"`
	Genre    []string `json:"genre" validate:"required,min=1,dive,genre"`
	Rate     *float64 `json:"rate" validate:"omitempty,gte=0,lte=10"`
}

// updateMovieRequest mirrors the movie body for partial validation.
type updateMovieRequest struct {
	Title    *string  `json:"title" validate:"omitempty,min=1"`
	Year     *int     `json:"year" validate:"omitempty,releaseyear"`
	Director *string  `json:"director" validate:"omitempty,min=1"`
	Duration *int     `json:"duration" validate:"omitempty,gt=0"`
	Poster   *string  `json:"poster" validate:"omitempty,url"`
	Genre    []string `json:"genre" validate:"omitempty,min=1,dive,genre"`
	Rate     *float64 `json:"rate" validate:"omitempty,gte=0,lte=10"`
}

// MovieValidator checks untyped request bodies against the movie schema.
type MovieValidator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewMovieValidator creates a MovieValidator.
func NewMovieValidator() *MovieValidator {
	return newMovieValidator(time.Now)
}

func newMovieValidator(now func() time.Time) *MovieValidator {
	mv := &MovieValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      now,
	}

	mv.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails on an empty tag or a nil func.
	_ = mv.validate.RegisterValidation("releaseyear", func(fl validator.FieldLevel) bool {
		year := fl.Field().Int()
		return year >= MinYear && year <= int64(mv.maxYear())
	})
	_ = mv.validate.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return isGenre(fl.Field().String())
	})

	return mv
}

func (mv *MovieValidator) maxYear() int {
	return mv.now().Year() + 1
}

// ValidateFull checks that raw holds a complete movie. Unknown keys are ignored
// and rate defaults to 0 when absent.
func (mv *MovieValidator) ValidateFull(raw map[string]interface{}) (models.MovieInput, error) {
	var req createMovieRequest
	errs := decode(raw, &req.Title, &req.Year, &req.Director, &req.Duration, &req.Poster, &req.Genre, &req.Rate)
	errs = mv.check(req, errs)
	if len(errs) > 0 {
		return models.MovieInput{}, errs
	}

	in := models.MovieInput{
		Title:    *req.Title,
		Year:     *req.Year,
		Director: *req.Director,
		Duration: *req.Duration,
		Poster:   *req.Poster,
		Genre:    req.Genre,
	}
	if req.Rate != nil {
		in.Rate = *req.Rate
	}
	return in, nil
}

// ValidatePartial checks only the fields present in raw. An empty body is valid.
func (mv *MovieValidator) ValidatePartial(raw map[string]interface{}) (models.MoviePatch, error) {
	var req updateMovieRequest
	errs := decode(raw, &req.Title, &req.Year, &req.Director, &req.Duration, &req.Poster, &req.Genre, &req.Rate)
	errs = mv.check(req, errs)
	if len(errs) > 0 {
		return models.MoviePatch{}, errs
	}

	return models.MoviePatch{
		Title:    req.Title,
		Year:     req.Year,
		Director: req.Director,
		Duration: req.Duration,
		Poster:   req.Poster,
		Genre:    req.Genre,
		Rate:     req.Rate,
	}, nil
}

// check runs the struct rules and appends their violations to typeErrs,
// skipping fields that already failed to type-check.
func (mv *MovieValidator) check(req interface{}, typeErrs Errors) Errors {
	err := mv.validate.Struct(req)
	if err == nil {
		return typeErrs
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return append(typeErrs, FieldError{Field: "", Rule: "invalid", Message: err.Error()})
	}

	failed := make(map[string]bool, len(typeErrs))
	for _, fe := range typeErrs {
		failed[rootField(fe.Field)] = true
	}
	errs := typeErrs
	for _, e := range validationErrors {
		if failed[rootField(e.Field())] {
			continue
		}
		errs = append(errs, FieldError{
			Field:   e.Field(),
			Rule:    e.Tag(),
			Message: mv.message(e),
		})
	}
	return errs
}

func (mv *MovieValidator) message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", e.Param())
		}
		return fmt.Sprintf("must be at least %s character(s) long", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", e.Param())
	case "url":
		return "must be a valid URL"
	case "releaseyear":
		return fmt.Sprintf("must be between %d and %d", MinYear, mv.maxYear())
	case "genre":
		return fmt.Sprintf("must be one of %s", strings.Join(models.Genres, ", "))
	}
	return fmt.Sprintf("failed on the '%s' tag", e.Tag())
}

// decode copies the recognised keys of raw into the typed destinations,
// collecting a violation for every value of the wrong JSON type.
func decode(raw map[string]interface{}, title **string, year **int, director **string,
	duration **int, poster **string, genre *[]string, rate **float64) Errors {
	var errs Errors

	str := func(field string, dst **string) {
		v, ok := raw[field]
		if !ok {
			return
		}
		s, ok := v.(string)
		if !ok {
			errs = append(errs, typeError(field, "string", v))
			return
		}
		*dst = &s
	}
	integer := func(field string, dst **int) {
		v, ok := raw[field]
		if !ok {
			return
		}
		n, ok := toInt(v)
		if !ok {
			errs = append(errs, typeError(field, "integer", v))
			return
		}
		*dst = &n
	}

	str("title", title)
	integer("year", year)
	str("director", director)
	integer("duration", duration)
	str("poster", poster)

	if v, ok := raw["genre"]; ok {
		items, ok := v.([]interface{})
		if !ok {
			errs = append(errs, typeError("genre", "array", v))
		} else {
			out := make([]string, 0, len(items))
			valid := true
			for i, item := range items {
				s, ok := item.(string)
				if !ok {
					errs = append(errs, typeError(fmt.Sprintf("genre[%d]", i), "string", item))
					valid = false
					continue
				}
				out = append(out, s)
			}
			if valid {
				*genre = out
			}
		}
	}

	if v, ok := raw["rate"]; ok {
		f, ok := toFloat(v)
		if !ok {
			errs = append(errs, typeError("rate", "number", v))
		} else {
			*rate = &f
		}
	}

	return errs
}

func typeError(field, expected string, got interface{}) FieldError {
	return FieldError{
		Field:   field,
		Rule:    "type",
		Message: fmt.Sprintf("expected %s, received %s", expected, jsonKind(got)),
	}
}

func toInt(v interface{}) (int, bool) {
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

// rootField strips an index suffix such as "genre[2]".
func rootField(field string) string {
	if i := strings.IndexByte(field, '['); i >= 0 {
		return field[:i]
	}
	return field
}

func isGenre(s string) bool {
	for _, g := range models.Genres {
		if g == s {
			return true
		}
	}
	return false
}
