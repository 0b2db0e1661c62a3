package items

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"catalog/core/utils"
	"catalog/feature/items/models"

	"github.com/go-playground/validator/v10"
)

const (
	maxNameLength     = 100
	maxCategoryLength = 50
)

var allowedFields = []string{"name", "category", "price"}

// detailOrder is the order field failures are reported in.
var detailOrder = []string{"name", "category", "price", "unknown"}

// ValidationError carries every field failure of a rejected payload.
type ValidationError struct {
	Details []models.FieldError
}

func (e *ValidationError) Error() string {
	return "Validation failed"
}

// itemInput carries the type-checked payload through the range and length rules.
type itemInput struct {
	Name     string  `validate:"max=100"`
	Category string  `validate:"max=50"`
	Price    float64 `validate:"min=0,max=1000000"`
}

var validate = validator.New()

// ruleMessages maps a failed StructField.tag to its client message.
var ruleMessages = map[string]string{
	"Name.max":     fmt.Sprintf("Name must be less than %d characters", maxNameLength),
	"Category.max": fmt.Sprintf("Category must be less than %d characters", maxCategoryLength),
	"Price.min":    "Price cannot be negative",
	"Price.max":    "Price cannot exceed $1,000,000",
}

// ValidateItem checks a decoded create payload and returns the sanitized item.
// Type checks run on the raw map so a non-string name or a non-numeric price
// gets its own message; bounds are checked with struct tags.
func ValidateItem(payload map[string]any) (models.Item, error) {
	failed := make(map[string]string)
	var input itemInput

	switch v := payload["name"].(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			if v == "" {
				failed["name"] = "Name is required"
			} else {
				failed["name"] = "Name cannot be empty"
			}
		} else {
			input.Name = v
		}
	case nil:
		failed["name"] = "Name is required"
	default:
		failed["name"] = "Name must be a string"
	}

	if category, ok := payload["category"]; ok {
		if s, isString := category.(string); isString {
			input.Category = s
		} else {
			failed["category"] = "Category must be a string"
		}
	}

	rawPrice, hasPrice := payload["price"]
	if hasPrice {
		if p, ok := utils.ToFloat(rawPrice); ok {
			input.Price = p
		} else {
			failed["price"] = "Price must be a valid number"
		}
	}

	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return models.Item{}, fmt.Errorf("failed to validate item: %w", err)
		}
		for _, fe := range verrs {
			field := strings.ToLower(fe.StructField())
			if _, seen := failed[field]; seen {
				continue
			}
			msg, ok := ruleMessages[fe.StructField()+"."+fe.Tag()]
			if !ok {
				msg = fmt.Sprintf("%s is invalid", fe.StructField())
			}
			failed[field] = msg
		}
	}

	var unknown []string
	for field := range payload {
		if field != "id" && !isAllowedField(field) {
			unknown = append(unknown, field)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		failed["unknown"] = fmt.Sprintf("Unknown fields: %s. Allowed fields: %s",
			strings.Join(unknown, ", "), strings.Join(allowedFields, ", "))
	}

	if len(failed) > 0 {
		var details []models.FieldError
		for _, field := range detailOrder {
			if msg, ok := failed[field]; ok {
				details = append(details, models.FieldError{Field: field, Message: msg})
			}
		}
		return models.Item{}, &ValidationError{Details: details}
	}

	item := models.Item{Name: utils.Truncate(input.Name, maxNameLength)}
	if input.Category != "" {
		item.Category = utils.Truncate(input.Category, maxCategoryLength)
	}
	if hasPrice {
		item.Price = input.Price
	}
	return item, nil
}

func isAllowedField(field string) bool {
	for _, f := range allowedFields {
		if f == field {
			return true
		}
	}
	return false
}
