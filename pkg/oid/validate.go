package oid

import "github.com/go-playground/validator/v10"

// ValidateValue reports whether v is already an ObjectID value. It performs
// an identity check only, never parsing, so a hex string does not pass.
func ValidateValue(v any) bool {
	_, ok := v.(ObjectID)
	return ok
}

// ValidatorFunc adapts ValidateValue for go-playground/validator, the engine
// gin binds requests with. Register it under a tag of your choice:
//
//	v.RegisterValidation("objectid", oid.ValidatorFunc())
func ValidatorFunc() validator.Func {
	return func(fl validator.FieldLevel) bool {
		return ValidateValue(fl.Field().Interface())
	}
}
