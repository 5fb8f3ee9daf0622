// Package form implements the declarative form engine used by every modal in
// the app: a field schema in, a validated flat key/value payload out. It owns
// no persistence and performs no I/O; submit handlers are supplied by callers.
package form

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

type FieldType string

const (
	TypeText     FieldType = "text"
	TypeEmail    FieldType = "email"
	TypeURL      FieldType = "url"
	TypeNumber   FieldType = "number"
	TypeDate     FieldType = "date"
	TypeSelect   FieldType = "select"
	TypeTextarea FieldType = "textarea"
	TypeCheckbox FieldType = "checkbox"
	TypeRadio    FieldType = "radio"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const dateLayout = "2006-01-02"

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Validator inspects a candidate value together with the full form snapshot
// (for cross-field rules) and returns an error message, or "" when valid.
type Validator func(value string, values map[string]string) string

// Field describes one input. Min/Max bound numeric fields; MinDate/MaxDate
// bound date fields; Pattern and Validate run last, in that order.
type Field struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Default  string    `json:"default,omitempty"`
	Options  []Option  `json:"options,omitempty"`

	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	MinDate string   `json:"min_date,omitempty"`
	MaxDate string   `json:"max_date,omitempty"`
	Pattern string   `json:"pattern,omitempty"`

	Validate Validator `json:"-"`
}

// Group wraps fields purely for layout. Grouping has no effect on validation
// or on the submitted payload shape.
type Group struct {
	Label  string  `json:"label"`
	Fields []Field `json:"fields"`
}

// Element is one schema entry: a lone field or a labelled group.
type Element struct {
	Field *Field `json:"field,omitempty"`
	Group *Group `json:"group,omitempty"`
}

func F(f Field) Element { return Element{Field: &f} }
func G(g Group) Element { return Element{Group: &g} }

// Form is a controlled form: working values, per-field touched flags, and the
// current error map. Errors surface only for touched fields until a submit
// attempt touches everything.
type Form struct {
	elements []Element
	fields   []Field

	values  map[string]string
	touched map[string]bool
	errors  map[string]string
	open    bool
	seedSig string
}

func New(elements []Element) *Form {
	return &Form{
		elements: elements,
		fields:   flatten(elements),
		values:   make(map[string]string),
		touched:  make(map[string]bool),
		errors:   make(map[string]string),
	}
}

func flatten(elements []Element) []Field {
	var fields []Field
	for _, el := range elements {
		if el.Field != nil {
			fields = append(fields, *el.Field)
		}
		if el.Group != nil {
			fields = append(fields, el.Group.Fields...)
		}
	}
	return fields
}

func (f *Form) Fields() []Field {
	return f.fields
}

// Open seeds the working values: caller initial data first, then the field's
// declared default, then empty. Seeding runs only on the closed-to-open
// transition or when the schema/initial-data pair changes, so in-progress
// edits survive unrelated re-renders.
func (f *Form) Open(initial map[string]string) {
	sig := f.seedSignature(initial)
	if f.open && sig == f.seedSig {
		return
	}
	f.seedSig = sig
	f.open = true
	f.touched = make(map[string]bool)
	f.errors = make(map[string]string)
	f.values = make(map[string]string, len(f.fields))

	for _, field := range f.fields {
		if v, ok := initial[field.Name]; ok {
			f.values[field.Name] = v
			continue
		}
		f.values[field.Name] = field.Default
	}
}

func (f *Form) Close() {
	f.open = false
	f.seedSig = ""
}

func (f *Form) IsOpen() bool {
	return f.open
}

func (f *Form) SetValue(name, value string) {
	if _, ok := f.values[name]; !ok && !f.knownField(name) {
		return
	}
	f.values[name] = value
	if f.touched[name] {
		f.validateField(name)
	}
}

func (f *Form) Value(name string) string {
	return f.values[name]
}

// Blur marks a field touched; from then on its error is visible.
func (f *Form) Blur(name string) {
	if !f.knownField(name) {
		return
	}
	f.touched[name] = true
	f.validateField(name)
}

// ErrorFor returns the field's error only once the field has been blurred or
// a submit attempt marked everything touched; pristine fields show nothing.
func (f *Form) ErrorFor(name string) string {
	if !f.touched[name] {
		return ""
	}
	return f.errors[name]
}

// Submit marks every field touched, re-runs full validation, and invokes fn
// exactly once with the flat name-to-value payload iff no field has an error.
func (f *Form) Submit(fn func(payload map[string]string) error) error {
	for _, field := range f.fields {
		f.touched[field.Name] = true
	}

	if errs := f.ValidateAll(); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	payload := make(map[string]string, len(f.fields))
	for _, field := range f.fields {
		payload[field.Name] = f.values[field.Name]
	}
	return fn(payload)
}

// ValidateAll validates every field and returns the error map; groups have
// already been flattened so the result is flat too.
func (f *Form) ValidateAll() map[string]string {
	for _, field := range f.fields {
		f.validateField(field.Name)
	}

	errs := make(map[string]string)
	for name, msg := range f.errors {
		if msg != "" {
			errs[name] = msg
		}
	}
	return errs
}

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

func (f *Form) validateField(name string) {
	field := f.field(name)
	if field == nil {
		return
	}
	f.errors[name] = validateValue(*field, f.values[name], f.values)
}

// validateValue applies the rules in order, short-circuiting on the first
// failure: required-but-empty, then type-specific, then pattern/custom.
func validateValue(field Field, value string, snapshot map[string]string) string {
	empty := strings.TrimSpace(value) == ""
	if field.Type == TypeCheckbox {
		empty = !cast.ToBool(value)
	}

	if empty {
		if field.Required {
			return "This field is required"
		}
		return ""
	}

	if msg := validateType(field, value); msg != "" {
		return msg
	}

	if field.Pattern != "" {
		re, err := regexp.Compile(field.Pattern)
		if err == nil && !re.MatchString(value) {
			return "Invalid format"
		}
	}

	if field.Validate != nil {
		return field.Validate(value, snapshot)
	}
	return ""
}

func validateType(field Field, value string) string {
	switch field.Type {
	case TypeEmail:
		if !emailRegex.MatchString(value) {
			return "Invalid email address"
		}
	case TypeURL:
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return "Invalid URL"
		}
	case TypeNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return "Must be a number"
		}
		if field.Min != nil && n < *field.Min {
			return "Value must be at least " + formatBound(*field.Min)
		}
		if field.Max != nil && n > *field.Max {
			return "Value must be at most " + formatBound(*field.Max)
		}
	case TypeDate:
		d, err := time.Parse(dateLayout, strings.TrimSpace(value))
		if err != nil {
			return "Invalid date"
		}
		if field.MinDate != "" {
			if min, err := time.Parse(dateLayout, field.MinDate); err == nil && d.Before(min) {
				return "Date must be on or after " + field.MinDate
			}
		}
		if field.MaxDate != "" {
			if max, err := time.Parse(dateLayout, field.MaxDate); err == nil && d.After(max) {
				return "Date must be on or before " + field.MaxDate
			}
		}
	}
	return ""
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (f *Form) field(name string) *Field {
	for i := range f.fields {
		if f.fields[i].Name == name {
			return &f.fields[i]
		}
	}
	return nil
}

func (f *Form) knownField(name string) bool {
	return f.field(name) != nil
}

// seedSignature fingerprints the schema plus initial data so Open can tell a
// genuine reopen/data change apart from a parent re-render.
func (f *Form) seedSignature(initial map[string]string) string {
	var b strings.Builder
	for _, field := range f.fields {
		b.WriteString(field.Name)
		b.WriteByte('=')
		b.WriteString(field.Default)
		b.WriteByte(';')
	}

	keys := make([]string, 0, len(initial))
	for k := range initial {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(initial[k])
		b.WriteByte(';')
	}
	return b.String()
}
