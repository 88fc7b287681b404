package contracts

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed schemas
var schemasFS embed.FS

const PropertyInputSchema = "PropertyInput/1.0.0"

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	// Сначала регистрируем все схемы как ресурсы, чтобы работали $ref между ними
	err := fs.WalkDir(schemasFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := schemasFS.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := compiler.AddResource(path, file); err != nil {
			return fmt.Errorf("add schema resource %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and adding schema resources: %v", err)
	}

	err = fs.WalkDir(schemasFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		schema, err := compiler.Compile(path)
		if err != nil {
			return fmt.Errorf("compile schema %s: %w", path, err)
		}
		compiledSchemas[generateKeyFromPath(path)] = schema
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and compiling schemas: %v", err)
	}
}

// generateKeyFromPath: "schemas/forms/property-input/v1.json" -> "PropertyInput/1.0.0".
func generateKeyFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, "schemas/forms/")
	trimmed = strings.TrimSuffix(trimmed, ".json")

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[0], "-") {
		name.WriteString(caser.String(p))
	}
	version := strings.Replace(parts[1], "v", "", 1) + ".0.0"

	return name.String() + "/" + version
}

// Validate проверяет документ по зарегистрированной схеме и возвращает
// *domain.ValidationError с ошибками по полям.
func Validate(schemaKey string, document any) error {
	schema, ok := compiledSchemas[schemaKey]
	if !ok {
		return fmt.Errorf("schema %q not found", schemaKey)
	}

	// схема работает с данными в виде, полученном из JSON
	raw, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("document is not a valid JSON: %w", err)
	}

	err = schema.Validate(v)
	if err == nil {
		return nil
	}
	var vErr *jsonschema.ValidationError
	if !errors.As(err, &vErr) {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return &domain.ValidationError{Fields: collectFieldErrors(vErr)}
}

// ValidatePropertyInput - проверка формы объявления до отправки.
// Год постройки в будущем проверяется отдельно: в схеме граница статична.
func ValidatePropertyInput(in domain.PropertyInput, now time.Time) error {
	var fields []domain.FieldError

	err := Validate(PropertyInputSchema, propertyDocument(in))
	if err != nil {
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			return err
		}
		fields = append(fields, vErr.Fields...)
	}
	if in.Details.YearBuilt > now.Year() {
		fields = append(fields, domain.FieldError{Field: "details.yearBuilt", Message: "Year built cannot be in the future"})
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// PropertyInputValidator - адаптер ValidatePropertyInput к port.PropertyValidatorPort.
type PropertyInputValidator struct {
	Now func() time.Time
}

func (v PropertyInputValidator) ValidatePropertyInput(in domain.PropertyInput) error {
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	return ValidatePropertyInput(in, now())
}

func propertyDocument(in domain.PropertyInput) map[string]any {
	amenities := in.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	images := make([]string, 0, len(in.Images))
	for _, img := range in.Images {
		images = append(images, img.Filename)
	}
	return map[string]any{
		"title":       in.Title,
		"description": in.Description,
		"type":        string(in.Type),
		"price":       in.Price,
		"status":      string(in.Status),
		"location": map[string]any{
			"address": in.Location.Address,
			"city":    in.Location.City,
			"state":   in.Location.State,
			"zipCode": in.Location.ZipCode,
			"country": in.Location.Country,
		},
		"details": map[string]any{
			"bedrooms":  in.Details.Bedrooms,
			"bathrooms": in.Details.Bathrooms,
			"sqft":      in.Details.Sqft,
			"yearBuilt": in.Details.YearBuilt,
		},
		"amenities": amenities,
		"images":    images,
	}
}

var quotedName = regexp.MustCompile(`['"]([^'"]+)['"]`)

func collectFieldErrors(root *jsonschema.ValidationError) []domain.FieldError {
	var out []domain.FieldError
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}
		keyword := e.KeywordLocation[strings.LastIndex(e.KeywordLocation, "/")+1:]
		field := instanceField(e.InstanceLocation)

		if keyword == "required" {
			for _, m := range quotedName.FindAllStringSubmatch(e.Message, -1) {
				name := joinField(field, m[1])
				out = append(out, domain.FieldError{Field: name, Message: fieldMessage(name, keyword, e.Message)})
			}
			return
		}
		out = append(out, domain.FieldError{Field: field, Message: fieldMessage(field, keyword, e.Message)})
	}
	walk(root)
	return out
}

func instanceField(location string) string {
	return strings.ReplaceAll(strings.TrimPrefix(location, "/"), "/", ".")
}

func joinField(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// Тексты ошибок формы объявления.
var fieldMessages = map[string]string{
	"title/minLength":           "Title must be at least 5 characters",
	"title/maxLength":           "Title must be less than 100 characters",
	"description/minLength":     "Description must be at least 20 characters",
	"description/maxLength":     "Description must be less than 2000 characters",
	"type/enum":                 "Please select a valid property type",
	"status/enum":               "Please select a valid status",
	"price/minimum":             "Price must be 0 or greater",
	"location.address":          "Address is required",
	"location.city":             "City is required",
	"location.state":            "State is required",
	"location.zipCode":          "ZIP code is required",
	"location.country":          "Country is required",
	"details.bedrooms/minimum":  "Bedrooms must be 0 or more",
	"details.bathrooms/minimum": "Bathrooms must be 0 or more",
	"details.sqft/minimum":      "Square footage is required",
	"details.yearBuilt/minimum": "Year built must be 1800 or later",
	"images/maxItems":           "You can upload at most 10 images",
}

func fieldMessage(field, keyword, fallback string) string {
	if msg, ok := fieldMessages[field+"/"+keyword]; ok {
		return msg
	}
	if msg, ok := fieldMessages[field]; ok {
		return msg
	}
	return fallback
}
