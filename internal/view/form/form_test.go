package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func carSchema() []Element {
	return []Element{
		F(Field{Name: "make", Label: "Make", Type: TypeText, Required: true}),
		F(Field{Name: "daily_rate", Label: "Daily Rate", Type: TypeNumber, Required: true, Min: floatPtr(1), Max: floatPtr(1000)}),
		G(Group{Label: "Details", Fields: []Field{
			{Name: "image_url", Label: "Image", Type: TypeURL},
			{Name: "status", Label: "Status", Type: TypeSelect, Default: "available", Options: []Option{
				{Value: "available", Label: "Available"},
				{Value: "maintenance", Label: "Maintenance"},
			}},
		}}),
	}
}

func TestOpen_SeedingPrecedence(t *testing.T) {
	f := New(carSchema())
	f.Open(map[string]string{"make": "Toyota"})

	assert.Equal(t, "Toyota", f.Value("make"))       // initial data wins
	assert.Equal(t, "available", f.Value("status"))  // falls back to default
	assert.Equal(t, "", f.Value("daily_rate"))       // then empty
}

func TestOpen_DoesNotReseedWhileOpen(t *testing.T) {
	f := New(carSchema())
	initial := map[string]string{"make": "Toyota"}

	f.Open(initial)
	f.SetValue("make", "Honda")

	// A re-render with the same schema and data must not clobber edits.
	f.Open(initial)
	assert.Equal(t, "Honda", f.Value("make"))

	// New initial data means a different record: reseed.
	f.Open(map[string]string{"make": "Ford"})
	assert.Equal(t, "Ford", f.Value("make"))
}

func TestOpen_ReseedsAfterClose(t *testing.T) {
	f := New(carSchema())
	initial := map[string]string{"make": "Toyota"}

	f.Open(initial)
	f.SetValue("make", "Honda")
	f.Close()

	f.Open(initial)
	assert.Equal(t, "Toyota", f.Value("make"))
}

func TestGroups_FlattenedInPayload(t *testing.T) {
	f := New(carSchema())
	f.Open(map[string]string{"make": "Toyota", "daily_rate": "50"})

	var payload map[string]string
	require.NoError(t, f.Submit(func(p map[string]string) error {
		payload = p
		return nil
	}))

	// Grouped fields appear as top-level keys, not nested.
	assert.Equal(t, "available", payload["status"])
	assert.Contains(t, payload, "image_url")
	assert.Len(t, payload, 4)
}

func TestValidation_Required(t *testing.T) {
	f := New([]Element{F(Field{Name: "make", Type: TypeText, Required: true})})
	f.Open(nil)

	f.SetValue("make", "   ")
	f.Blur("make")
	assert.Equal(t, "This field is required", f.ErrorFor("make"))

	f.SetValue("make", "Toyota")
	assert.Empty(t, f.ErrorFor("make"))
}

func TestValidation_NumberBounds(t *testing.T) {
	f := New([]Element{F(Field{Name: "rate", Type: TypeNumber, Min: floatPtr(1), Max: floatPtr(1000)})})
	f.Open(nil)

	cases := []struct {
		value string
		want  string
	}{
		{"abc", "Must be a number"},
		{"0.5", "Value must be at least 1"},
		{"1200", "Value must be at most 1000"},
		{"49.99", ""},
		{"", ""}, // empty optional field skips type checks
	}
	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			f.SetValue("rate", tc.value)
			f.Blur("rate")
			assert.Equal(t, tc.want, f.ErrorFor("rate"))
		})
	}
}

func TestValidation_EmailAndURL(t *testing.T) {
	f := New([]Element{
		F(Field{Name: "email", Type: TypeEmail}),
		F(Field{Name: "image", Type: TypeURL}),
	})
	f.Open(nil)

	f.SetValue("email", "not-an-email")
	f.Blur("email")
	assert.Equal(t, "Invalid email address", f.ErrorFor("email"))

	f.SetValue("email", "alice@example.com")
	assert.Empty(t, f.ErrorFor("email"))

	f.SetValue("image", "nope")
	f.Blur("image")
	assert.Equal(t, "Invalid URL", f.ErrorFor("image"))

	f.SetValue("image", "https://cdn.example.com/car.jpg")
	assert.Empty(t, f.ErrorFor("image"))
}

func TestValidation_DateBounds(t *testing.T) {
	f := New([]Element{F(Field{Name: "pickup", Type: TypeDate, MinDate: "2025-08-01", MaxDate: "2025-12-31"})})
	f.Open(nil)

	f.SetValue("pickup", "08/15/2025")
	f.Blur("pickup")
	assert.Equal(t, "Invalid date", f.ErrorFor("pickup"))

	f.SetValue("pickup", "2025-07-01")
	assert.Equal(t, "Date must be on or after 2025-08-01", f.ErrorFor("pickup"))

	f.SetValue("pickup", "2026-01-10")
	assert.Equal(t, "Date must be on or before 2025-12-31", f.ErrorFor("pickup"))

	f.SetValue("pickup", "2025-08-15")
	assert.Empty(t, f.ErrorFor("pickup"))
}

func TestValidation_PatternAndCustomRunLast(t *testing.T) {
	f := New([]Element{
		F(Field{Name: "plate", Type: TypeText, Pattern: `^[A-Z]{2}-\d{3}$`}),
		F(Field{
			Name: "return_date",
			Type: TypeDate,
			Validate: func(value string, values map[string]string) string {
				if value < values["pickup_date"] {
					return "Return date must be on or after pickup date"
				}
				return ""
			},
		}),
		F(Field{Name: "pickup_date", Type: TypeDate}),
	})
	f.Open(map[string]string{"pickup_date": "2025-08-10"})

	f.SetValue("plate", "ab-123")
	f.Blur("plate")
	assert.Equal(t, "Invalid format", f.ErrorFor("plate"))

	// Custom validator sees the full snapshot for cross-field rules.
	f.SetValue("return_date", "2025-08-05")
	f.Blur("return_date")
	assert.Equal(t, "Return date must be on or after pickup date", f.ErrorFor("return_date"))

	// Type check runs before the custom validator.
	f.SetValue("return_date", "garbage")
	assert.Equal(t, "Invalid date", f.ErrorFor("return_date"))
}

func TestValidation_RequiredCheckbox(t *testing.T) {
	f := New([]Element{F(Field{Name: "terms", Type: TypeCheckbox, Required: true})})
	f.Open(nil)

	f.SetValue("terms", "false")
	f.Blur("terms")
	assert.Equal(t, "This field is required", f.ErrorFor("terms"))

	f.SetValue("terms", "true")
	assert.Empty(t, f.ErrorFor("terms"))
}

func TestErrors_HiddenUntilTouched(t *testing.T) {
	f := New([]Element{F(Field{Name: "make", Type: TypeText, Required: true})})
	f.Open(nil)

	// Pristine field: invalid but silent.
	assert.Empty(t, f.ErrorFor("make"))

	f.Blur("make")
	assert.Equal(t, "This field is required", f.ErrorFor("make"))
}

func TestSubmit_BlockedUntilValid(t *testing.T) {
	f := New(carSchema())
	f.Open(nil)

	calls := 0
	err := f.Submit(func(p map[string]string) error {
		calls++
		return nil
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, calls)
	assert.Contains(t, verr.Fields, "make")
	assert.Contains(t, verr.Fields, "daily_rate")

	// Submit attempt surfaces errors on every field, touched or not.
	assert.Equal(t, "This field is required", f.ErrorFor("make"))

	f.SetValue("make", "Toyota")
	f.SetValue("daily_rate", "50")
	require.NoError(t, f.Submit(func(p map[string]string) error {
		calls++
		return nil
	}))
	assert.Equal(t, 1, calls)
}

func TestSubmit_PropagatesHandlerError(t *testing.T) {
	f := New([]Element{F(Field{Name: "make", Type: TypeText})})
	f.Open(map[string]string{"make": "Toyota"})

	boom := errors.New("backend down")
	assert.ErrorIs(t, f.Submit(func(p map[string]string) error { return boom }), boom)
}
