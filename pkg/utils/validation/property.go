package validation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"imoveisuniao_backend/internal/model"
)

// FieldError describes a single rejected field: which field, the submitted
// value and the violated constraint.
type FieldError struct {
	Field      string      `json:"field"`
	Value      interface{} `json:"value"`
	Constraint string      `json:"constraint"`
}

// ValidationErrors is the full list of rejected fields for one submission.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	fields := make([]string, len(v))
	for i, e := range v {
		fields[i] = e.Field
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

// CreatePropertyInput is a fully typed, range-checked property submission.
type CreatePropertyInput struct {
	Title string `json:"title"`

	InternalCode string `json:"internal_code"`
	RipID        string `json:"rip_id"`

	Address        string `json:"address"`
	ReferencePoint string `json:"reference_point"`
	GoogleMapsLink string `json:"google_maps_link"`
	CEP            string `json:"cep"`
	Street         string `json:"street"`
	Number         string `json:"number"`
	Complement     string `json:"complement"`
	Neighborhood   string `json:"neighborhood"`
	City           string `json:"city"`
	State          string `json:"state"`

	Matricula       string `json:"matricula"`
	Processo        string `json:"processo"`
	Juizo           string `json:"juizo"`
	Cartorio        string `json:"cartorio"`
	HasGravames     string `json:"has_gravames"`
	GravamesDetails string `json:"gravames_details"`

	PropertyTypeID    uint `json:"property_type_id"`
	PropertySubtypeID uint `json:"property_subtype_id"`

	BuiltArea        *float64 `json:"built_area" validate:"omitempty,gte=0,lte=9999999.99"`
	LandArea         *float64 `json:"land_area" validate:"omitempty,gte=0,lte=9999999.99"`
	Bedrooms         *int     `json:"bedrooms" validate:"omitempty,gte=0,lte=100"`
	Bathrooms        *int     `json:"bathrooms" validate:"omitempty,gte=0,lte=50"`
	GarageSpots      *int     `json:"garage_spots" validate:"omitempty,gte=0"`
	ConstructionYear *int     `json:"construction_year" validate:"omitempty,gte=1800"`

	Description   string `json:"description"`
	InternalNotes string `json:"internal_notes"`

	MarketPrice  float64 `json:"market_price" validate:"gte=0,lte=999999999.99"`
	MinimumPrice float64 `json:"minimum_price" validate:"gte=0,lte=999999999.99"`

	Deadline    time.Time         `json:"deadline"`
	PaymentType model.PaymentType `json:"payment_type"`

	MinDownPayment  *float64 `json:"min_down_payment" validate:"omitempty,gte=0,lte=100"`
	MaxInstallments *int     `json:"max_installments" validate:"omitempty,lte=240"`

	Status model.PropertyStatus `json:"status"`

	Features  []string `json:"features"`
	MediaURLs []string `json:"media_urls"`
}

var allowedFields = map[string]bool{
	"title": true, "internal_code": true, "rip_id": true,
	"address": true, "reference_point": true, "google_maps_link": true,
	"cep": true, "street": true, "number": true, "complement": true,
	"neighborhood": true, "city": true, "state": true,
	"matricula": true, "processo": true, "juizo": true, "cartorio": true,
	"has_gravames": true, "gravames_details": true,
	"property_type_id": true, "property_subtype_id": true,
	"built_area": true, "land_area": true, "bedrooms": true, "bathrooms": true,
	"garage_spots": true, "construction_year": true,
	"description": true, "internal_notes": true,
	"market_price": true, "minimum_price": true,
	"deadline": true, "payment_type": true,
	"min_down_payment": true, "max_installments": true,
	"status": true, "user_id": true,
	"features": true, "media_urls": true,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report errors under the json field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseSubmission turns raw form values into a validated CreatePropertyInput.
// Unknown fields fail the whole submission. Every rejected field is reported
// with its value and the violated constraint.
func ParseSubmission(form map[string][]string) (*CreatePropertyInput, ValidationErrors) {
	var errs ValidationErrors

	for key := range form {
		if !allowedFields[key] {
			errs = append(errs, FieldError{Field: key, Constraint: "unexpected field"})
		}
	}

	first := func(key string) (string, bool) {
		vals, ok := form[key]
		if !ok || len(vals) == 0 {
			return "", false
		}
		return vals[0], true
	}

	requireString := func(key string) string {
		raw, ok := first(key)
		if !ok || raw == "" {
			errs = append(errs, FieldError{Field: key, Constraint: "is required"})
		}
		return raw
	}

	optionalFloat := func(key string) *float64 {
		raw, ok := first(key)
		if !ok || raw == "" {
			return nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, FieldError{Field: key, Value: raw, Constraint: "must be a number"})
			return nil
		}
		return &f
	}

	optionalInt := func(key string) *int {
		raw, ok := first(key)
		if !ok || raw == "" {
			return nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, FieldError{Field: key, Value: raw, Constraint: "must be an integer"})
			return nil
		}
		return &n
	}

	requireFloat := func(key string) float64 {
		raw, ok := first(key)
		if !ok || raw == "" {
			errs = append(errs, FieldError{Field: key, Constraint: "is required"})
			return 0
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, FieldError{Field: key, Value: raw, Constraint: "must be a number"})
			return 0
		}
		return f
	}

	requireID := func(key string) uint {
		raw, ok := first(key)
		if !ok || raw == "" {
			errs = append(errs, FieldError{Field: key, Constraint: "is required"})
			return 0
		}
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			errs = append(errs, FieldError{Field: key, Value: raw, Constraint: "must be a positive integer"})
			return 0
		}
		return uint(n)
	}

	stringValue := func(key string) string {
		raw, _ := first(key)
		return raw
	}

	input := &CreatePropertyInput{
		Title:             requireString("title"),
		InternalCode:      stringValue("internal_code"),
		RipID:             stringValue("rip_id"),
		Address:           requireString("address"),
		ReferencePoint:    stringValue("reference_point"),
		GoogleMapsLink:    stringValue("google_maps_link"),
		CEP:               stringValue("cep"),
		Street:            stringValue("street"),
		Number:            stringValue("number"),
		Complement:        stringValue("complement"),
		Neighborhood:      stringValue("neighborhood"),
		City:              stringValue("city"),
		State:             stringValue("state"),
		Matricula:         stringValue("matricula"),
		Processo:          stringValue("processo"),
		Juizo:             stringValue("juizo"),
		Cartorio:          stringValue("cartorio"),
		HasGravames:       stringValue("has_gravames"),
		GravamesDetails:   stringValue("gravames_details"),
		PropertyTypeID:    requireID("property_type_id"),
		PropertySubtypeID: requireID("property_subtype_id"),
		BuiltArea:         optionalFloat("built_area"),
		LandArea:          optionalFloat("land_area"),
		Bedrooms:          optionalInt("bedrooms"),
		Bathrooms:         optionalInt("bathrooms"),
		GarageSpots:       optionalInt("garage_spots"),
		ConstructionYear:  optionalInt("construction_year"),
		Description:       requireString("description"),
		InternalNotes:     stringValue("internal_notes"),
		MarketPrice:       requireFloat("market_price"),
		MinimumPrice:      requireFloat("minimum_price"),
		MinDownPayment:    optionalFloat("min_down_payment"),
		MaxInstallments:   optionalInt("max_installments"),
	}

	// deadline
	if raw, ok := first("deadline"); ok && raw != "" {
		t, err := ParseDeadline(raw)
		if err != nil {
			errs = append(errs, FieldError{Field: "deadline", Value: raw, Constraint: "must be a valid date"})
		} else {
			input.Deadline = t
		}
	} else {
		errs = append(errs, FieldError{Field: "deadline", Constraint: "is required"})
	}

	// payment_type
	if raw, ok := first("payment_type"); ok && raw != "" {
		pt := model.PaymentType(raw)
		if !model.ValidPaymentType(pt) {
			errs = append(errs, FieldError{Field: "payment_type", Value: raw, Constraint: "must be one of: cash, installments"})
		} else {
			input.PaymentType = pt
		}
	} else {
		errs = append(errs, FieldError{Field: "payment_type", Constraint: "is required"})
	}

	// status defaults to active
	if raw, ok := first("status"); ok && raw != "" {
		st := model.PropertyStatus(raw)
		if !model.ValidPropertyStatus(st) {
			errs = append(errs, FieldError{Field: "status", Value: raw, Constraint: "must be one of: active, pending, sold, expired"})
		} else {
			input.Status = st
		}
	} else {
		input.Status = model.PropertyStatusActive
	}

	// list fields: JSON-encoded string or repeated form values
	input.Features = parseListField(form, "features", &errs)
	input.MediaURLs = parseListField(form, "media_urls", &errs)

	if structErrs := checkRanges(input); len(structErrs) > 0 {
		errs = append(errs, structErrs...)
	}

	if input.ConstructionYear != nil && *input.ConstructionYear > time.Now().Year() {
		errs = append(errs, FieldError{
			Field:      "construction_year",
			Value:      *input.ConstructionYear,
			Constraint: fmt.Sprintf("must not be later than %d", time.Now().Year()),
		})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return input, nil
}

func ParseDeadline(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// parseListField accepts either a JSON array in a single form value or
// repeated plain values. Malformed JSON is a validation failure, not a
// silent empty list.
func parseListField(form map[string][]string, key string, errs *ValidationErrors) []string {
	vals, ok := form[key]
	if !ok || len(vals) == 0 {
		return nil
	}

	if len(vals) == 1 && strings.HasPrefix(strings.TrimSpace(vals[0]), "[") {
		var list []string
		if err := json.Unmarshal([]byte(vals[0]), &list); err != nil {
			*errs = append(*errs, FieldError{Field: key, Value: vals[0], Constraint: "must be a JSON array of strings"})
			return nil
		}
		return list
	}

	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func checkRanges(input *CreatePropertyInput) ValidationErrors {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "submission", Constraint: err.Error()}}
	}

	var out ValidationErrors
	for _, e := range verrs {
		constraint := e.Tag()
		if e.Param() != "" {
			constraint = fmt.Sprintf("%s=%s", e.Tag(), e.Param())
		}
		out = append(out, FieldError{
			Field:      e.Field(),
			Value:      e.Value(),
			Constraint: constraint,
		})
	}
	return out
}
