package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
)

// New returns a validator with the notblank rule registered.
// notblank rejects empty and whitespace-only strings; a missing optional
// field is expressed with omitempty or a pointer, so blank and absent stay
// distinguishable per field.
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Translate maps validator violations onto the localized messages of a DTO.
// Keys are looked up as "Field.tag" first, then "Field". All violations are
// joined with "; " so a single response names every failing field.
func Translate(err error, messages map[string]string) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return appErrors.ErrValidation.Message
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldName(fe)
		if msg, ok := messages[field+"."+fe.Tag()]; ok {
			parts = append(parts, msg)
			continue
		}
		if msg, ok := messages[field]; ok {
			parts = append(parts, msg)
			continue
		}
		parts = append(parts, field+" không hợp lệ")
	}
	return strings.Join(parts, "; ")
}

// Check validates a payload and converts violations into a typed
// VALIDATION_ERROR carrying the translated message.
func Check(v *validator.Validate, payload interface{}, messages map[string]string) error {
	err := v.Struct(payload)
	if err == nil {
		return nil
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, Translate(err, messages))
}

// fieldName strips the struct prefix and any slice index from the namespace,
// keeping the nested field path (e.g. "TeamAccess.Permission").
func fieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		ns = ns[idx+1:]
	}
	for {
		open := strings.Index(ns, "[")
		if open < 0 {
			break
		}
		close := strings.Index(ns, "]")
		if close < 0 {
			break
		}
		ns = ns[:open] + ns[close+1:]
	}
	return ns
}
