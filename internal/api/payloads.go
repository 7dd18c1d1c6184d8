package api

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/bilgisen/fortune-news/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields under their json names so error lists match the wire
	// format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// dateLayouts are the accepted instant formats, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseInstant(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// translateValidation converts validator violations into per-field
// messages, keeping every failure rather than only the first.
func translateValidation(err error) []FieldError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "root", Message: err.Error()}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
		})
	}
	return fields
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// UploadInput is the create payload of POST /upload.
type UploadInput struct {
	Title    string                        `json:"title" validate:"required,max=1000"`
	ISODate  string                        `json:"isoDate" validate:"required"`
	Link     string                        `json:"link" validate:"required,url"`
	Content  models.Opt[string]            `json:"content,omitzero"`
	AIWorth  models.Opt[bool]              `json:"aiWorth,omitzero"`
	AIReason models.Opt[string]            `json:"aiReason,omitzero"`
	Category models.Opt[string]            `json:"category,omitzero"`
	Status   models.Opt[models.NewsStatus] `json:"status,omitzero"`

	parsedDate time.Time
}

// ParseUploadInput decodes and validates the create payload. All
// violations are reported together.
func ParseUploadInput(c *fiber.Ctx) (*UploadInput, error) {
	var input UploadInput
	if err := c.BodyParser(&input); err != nil {
		return nil, NewValidationError(FieldError{Field: "body", Message: "request body must be valid JSON"})
	}

	var fields []FieldError
	if err := validate.Struct(&input); err != nil {
		fields = translateValidation(err)
	}

	if input.ISODate != "" {
		parsed, ok := parseInstant(input.ISODate)
		if !ok {
			fields = append(fields, FieldError{Field: "isoDate", Message: "isoDate must be a valid ISO-8601 date"})
		}
		input.parsedDate = parsed
	}

	fields = append(fields, validateOptionalFields(input.Content, input.AIReason, input.Category, input.Status)...)

	if len(fields) > 0 {
		return nil, NewValidationError(fields...)
	}
	return &input, nil
}

// ToModel builds the record to persist. Unset optional fields stay nil so
// the store default applies; explicit nulls are stored as NULL. Status
// defaults to DRAFT.
func (in *UploadInput) ToModel() *models.News {
	news := &models.News{
		Title:    in.Title,
		ISODate:  in.parsedDate,
		Link:     in.Link,
		Content:  in.Content.Ptr(),
		AIWorth:  in.AIWorth.Ptr(),
		AIReason: in.AIReason.Ptr(),
		Category: in.Category.Ptr(),
		Status:   models.StatusDraft,
	}
	if in.Status.Set && in.Status.Valid {
		news.Status = in.Status.Value
	}
	return news
}

// UpdateInput is the partial-update payload of PUT /admin/news/:id. Plain
// optional fields use pointers; nullable columns use Opt so an explicit
// null stays distinguishable from an omitted key. Status also uses Opt,
// but only so a null can be rejected rather than mistaken for absent.
type UpdateInput struct {
	Title    *string                       `json:"title,omitempty" validate:"omitempty,min=1,max=1000"`
	ISODate  *string                       `json:"isoDate,omitempty"`
	Link     *string                       `json:"link,omitempty" validate:"omitempty,url"`
	Content  models.Opt[string]            `json:"content,omitzero"`
	AIWorth  models.Opt[bool]              `json:"aiWorth,omitzero"`
	AIReason models.Opt[string]            `json:"aiReason,omitzero"`
	Category models.Opt[string]            `json:"category,omitzero"`
	Status   models.Opt[models.NewsStatus] `json:"status,omitzero"`

	parsedDate time.Time
}

// ParseUpdateInput decodes and validates the update payload. An update
// supplying no recognized fields is rejected.
func ParseUpdateInput(c *fiber.Ctx) (*UpdateInput, error) {
	var input UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return nil, NewValidationError(FieldError{Field: "body", Message: "request body must be valid JSON"})
	}

	var fields []FieldError
	if err := validate.Struct(&input); err != nil {
		fields = translateValidation(err)
	}

	if input.ISODate != nil {
		parsed, ok := parseInstant(*input.ISODate)
		if !ok {
			fields = append(fields, FieldError{Field: "isoDate", Message: "isoDate must be a valid ISO-8601 date"})
		}
		input.parsedDate = parsed
	}

	// Status is not a nullable column: an explicit null is a violation,
	// not a clear.
	if input.Status.Set && !input.Status.Valid {
		fields = append(fields, FieldError{Field: "status", Message: "status must be one of DRAFT PUBLISH"})
	}
	fields = append(fields, validateOptionalFields(input.Content, input.AIReason, input.Category, input.Status)...)

	if input.empty() {
		fields = append(fields, FieldError{Field: "root", Message: "at least one field must be provided for update"})
	}

	if len(fields) > 0 {
		return nil, NewValidationError(fields...)
	}
	return &input, nil
}

func (in *UpdateInput) empty() bool {
	return in.Title == nil &&
		in.ISODate == nil &&
		in.Link == nil &&
		!in.Content.Set &&
		!in.AIWorth.Set &&
		!in.AIReason.Set &&
		!in.Category.Set &&
		!in.Status.Set
}

// Fields returns the column map for the store update; only supplied keys
// appear, and a nil value clears the column.
func (in *UpdateInput) Fields() map[string]any {
	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.ISODate != nil {
		fields["iso_date"] = in.parsedDate
	}
	if in.Link != nil {
		fields["link"] = *in.Link
	}
	if in.Content.Set {
		fields["content"] = optColumn(in.Content)
	}
	if in.AIWorth.Set {
		fields["ai_worth"] = optColumn(in.AIWorth)
	}
	if in.AIReason.Set {
		fields["ai_reason"] = optColumn(in.AIReason)
	}
	if in.Category.Set {
		fields["category"] = optColumn(in.Category)
	}
	if in.Status.Set {
		fields["status"] = in.Status.Value
	}
	return fields
}

func optColumn[T any](o models.Opt[T]) any {
	if !o.Valid {
		return nil
	}
	return o.Value
}

// validateOptionalFields enforces the length and literal constraints of
// the nullable columns shared by create and update payloads.
func validateOptionalFields(content, aiReason, category models.Opt[string], status models.Opt[models.NewsStatus]) []FieldError {
	var fields []FieldError
	if content.Valid && len(content.Value) > 5000 {
		fields = append(fields, FieldError{Field: "content", Message: "content must be at most 5000 characters"})
	}
	if aiReason.Valid && len(aiReason.Value) > 2000 {
		fields = append(fields, FieldError{Field: "aiReason", Message: "aiReason must be at most 2000 characters"})
	}
	if category.Valid && len(category.Value) > 100 {
		fields = append(fields, FieldError{Field: "category", Message: "category must be at most 100 characters"})
	}
	if status.Valid && !status.Value.Valid() {
		fields = append(fields, FieldError{Field: "status", Message: "status must be one of DRAFT PUBLISH"})
	}
	return fields
}
