// Package validation binds request bodies and checks them with
// go-playground/validator.
//
// Field names in validation errors are the JSON names the client sent, so a
// missing "nombre_mascota" is reported as "nombre_mascota" rather than the Go
// field name.
package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator instance. validator.Validate caches
// struct metadata, so one instance is reused for every request.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// A zero decimal counts as absent, the same way a zero int does.
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			d, ok := field.Interface().(decimal.Decimal)
			if !ok || d.IsZero() {
				return nil
			}
			return d.InexactFloat64()
		}, decimal.Decimal{})

		instance = v
	})
	return instance
}

// Struct validates s with the shared validator.
func Struct(s interface{}) error {
	return Validator().Struct(s)
}
