package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

var configValidator = validator.New()

// applyDefaults fills zero fields from `default` struct tags
func applyDefaults(cfg any) error {
	if err := defaults.Set(cfg); err != nil {
		return fmt.Errorf("failed to apply config defaults: %w", err)
	}
	return nil
}

// validateConfig reports the first failed constraint using the env var name
// carried in the `env` struct tag.
func validateConfig(cfg any) error {
	err := configValidator.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.ActualTag() == "required" {
			return fmt.Errorf("%s is required", envName(cfg, fe.StructField()))
		}
		return fmt.Errorf("%s is invalid: %v (%s %s)", envName(cfg, fe.StructField()), fe.Value(), fe.ActualTag(), fe.Param())
	}
	return err
}

func durationFromEnv(getenv func(string) string, key string, dst *time.Duration) error {
	v := getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s must be a duration: %w", key, err)
	}
	*dst = d
	return nil
}

func boolFromEnv(getenv func(string) string, key string, dst *bool) error {
	v := getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	*dst = b
	return nil
}

func intFromEnv(getenv func(string) string, key string, dst *int) error {
	v := getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s must be an integer: %w", key, err)
	}
	*dst = n
	return nil
}

func stringFromEnv(getenv func(string) string, key string, dst *string) {
	if v := getenv(key); v != "" {
		*dst = v
	}
}

// envName returns the `env` tag of the named field, falling back to the field name
func envName(cfg any, field string) string {
	t := reflect.TypeOf(cfg)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(field); ok {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
	}
	return field
}
