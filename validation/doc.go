// Package validation validates configuration structs using
// go-playground/validator struct tags.
//
//	type DemoConfig struct {
//	    Elements   []int   `mapstructure:"elements" validate:"required,min=1"`
//	    SampleRate float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
//	}
//	err := validation.Validate(cfg)
//
// Failures are returned as *errors.AppError with code INVALID_INPUT and a
// "fields" detail listing each offending field.
package validation
