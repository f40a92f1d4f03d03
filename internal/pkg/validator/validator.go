// Package validator checks structs against their `validate` tags and reports
// every failing field in one error.
package validator

import (
	"errors"
	"fmt"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed heads the joined error returned by Validate.
var ErrValidationFailed = errors.New("validation failed")

var validate = gvalidator.New(gvalidator.WithRequiredStructEnabled())

// describe renders one field failure as
// `Config.LogLevel: value "verbose" fails oneof=debug info warn error`.
func describe(fe gvalidator.FieldError) error {
	rule := fe.Tag()
	if param := fe.Param(); param != "" {
		rule += "=" + param
	}

	return fmt.Errorf("%s: value %q fails %s", fe.Namespace(), fmt.Sprint(fe.Value()), rule)
}

// formatError joins ErrValidationFailed with one error per failing field.
// Errors that are not field failures are returned unchanged.
func formatError(err error) error {
	var fieldErrs gvalidator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]error, 0, len(fieldErrs)+1)
	errs = append(errs, ErrValidationFailed)
	for _, fe := range fieldErrs {
		errs = append(errs, describe(fe))
	}

	return errors.Join(errs...)
}

// Validate returns nil when v satisfies its tags.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatError(err)
	}

	return nil
}
