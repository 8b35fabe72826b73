package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"tavolo/shared/constant"
	"tavolo/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func registerTimeOfDayValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := parseClock(value)

	return err == nil
}

func parseClock(value string) (struct{ hour, minute int }, error) {
	var clock struct{ hour, minute int }

	if _, err := fmt.Sscanf(value, "%d:%d", &clock.hour, &clock.minute); err != nil {
		return clock, fmt.Errorf("invalid time of day %q: %w", value, err)
	}

	if clock.hour < 0 || clock.hour > 23 || clock.minute < 0 || clock.minute > 59 {
		return clock, fmt.Errorf("time of day %q out of range", value)
	}

	return clock, nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	err := validate.RegisterValidation("timeofday", registerTimeOfDayValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("dateonly", func(fl val.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		return len(value) == len(constant.DateFormat) && validate.Var(value, "datetime=2006-01-02") == nil
	})
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
