package validators

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
)

// Register adds the clinic binding tags to gin's validator:
//
//	clock  "HH:MM", two digits each
//	ymd    a real YYYY-MM-DD date
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return RegisterOn(v)
}

// RegisterOn also makes errors report the json (or form) field name.
func RegisterOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(fieldName)

	if err := v.RegisterValidation("clock", isClock); err != nil {
		return err
	}
	return v.RegisterValidation("ymd", isDate)
}

func isClock(fl validator.FieldLevel) bool {
	_, err := availability.ParseClock(fl.Field().String())
	return err == nil
}

func isDate(fl validator.FieldLevel) bool {
	return availability.ValidDate(fl.Field().String())
}

func fieldName(fld reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}
