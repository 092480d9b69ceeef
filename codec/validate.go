package codec

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their wire names so errors point at the JSON the service sees.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterStructValidation(workShiftOrdered, WorkShiftPayload{})
	v.RegisterStructValidation(timeRangeOrdered, TimeRangePayload{})
	v.RegisterStructValidation(breakOrdered, BreakPayload{})

	return v
}

func workShiftOrdered(sl validator.StructLevel) {
	ws := sl.Current().Interface().(WorkShiftPayload)
	if ws.From != nil && ws.To != nil && !ws.From.WallClock().Before(ws.To.WallClock()) {
		sl.ReportError(ws.To, "to", "To", "after_from", "")
	}
}

func timeRangeOrdered(sl validator.StructLevel) {
	tr := sl.Current().Interface().(TimeRangePayload)
	if tr.From != nil && tr.To != nil && !tr.From.WallClock().Before(tr.To.WallClock()) {
		sl.ReportError(tr.To, "to", "To", "after_from", "")
	}
}

func breakOrdered(sl validator.StructLevel) {
	b := sl.Current().Interface().(BreakPayload)
	if b.StartFrom != nil && b.StartTo != nil && b.StartTo.WallClock().Before(b.StartFrom.WallClock()) {
		sl.ReportError(b.StartTo, "breakStartTo", "StartTo", "after_from", "")
	}
}

// toSerializationError converts the first validator failure into a SerializationError.
func toSerializationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &SerializationError{Reason: err.Error()}
	}

	fe := verrs[0]
	return &SerializationError{
		Field:  wirePath(fe.Namespace()),
		Reason: reason(fe),
	}
}

// Drop the root type name: "RoutePlanPayload.drivers[0].id" -> "drivers[0].id".
func wirePath(ns string) string {
	_, rest, found := strings.Cut(ns, ".")
	if !found {
		return ns
	}
	return rest
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte", "min":
		return "must be >= " + fe.Param()
	case "max":
		return "must be <= " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "after_from":
		return "must be after the start of the range"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
