package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/reman-wear/storefront/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// LoadFile reads a JSON catalog file and validates every product before
// building the catalog. Malformed entries reject the whole file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "reading catalog file")
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid catalog file").
			WithDetails(map[string]any{"error": err.Error()})
	}
	if len(products) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog file contains no products")
	}

	seen := make(map[string]struct{}, len(products))
	for i, p := range products {
		if err := validate.Struct(p); err != nil {
			return nil, formatValidationErrors(i, err)
		}
		if !p.Price.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog validation failed").
				WithDetails(map[string]string{"price": fmt.Sprintf("product %d: price must be positive", i)})
		}
		if _, dup := seen[p.ID]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog validation failed").
				WithDetails(map[string]string{"id": fmt.Sprintf("duplicate product id %q", p.ID)})
		}
		seen[p.ID] = struct{}{}
	}

	return New(products), nil
}

func formatValidationErrors(index int, err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = fmt.Sprintf("product %d: failed %q", index, fieldErr.Tag())
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "catalog validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "catalog validation failed")
}
