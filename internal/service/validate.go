package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/horsh321/teem-server/internal/model"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// shippingError validates the destination of an order.
func shippingError(details model.ShippingDetails) error {
	return fieldError(validate.Struct(details))
}

// fieldError turns the first validator failure into a domain error.
func fieldError(err error) error {
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return model.MissingField("shippingDetails." + errs[0].Field())
	}
	return model.ErrMissingField
}
