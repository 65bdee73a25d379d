package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks field constraints declared on Config
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	problems := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		problems = append(problems, fmt.Sprintf("%s failed %q", e.Field(), e.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
}

// Warnings reports settings that are legal but probably unintended
func (c *Config) Warnings() []string {
	var warnings []string

	if c.ListenHost != DefaultListenHost && c.ListenHost != "localhost" && c.APIKey == "" {
		warnings = append(warnings, "LISTEN_HOST is not loopback and API_KEY is empty - the migration surface is unauthenticated")
	}

	if c.APIAccessToken != "" && c.APIBaseURL == "" {
		warnings = append(warnings, "API_ACCESS_TOKEN is set without API_BASE_URL - the run command will require --api-base-url")
	}

	if c.ImportTimeout == 0 {
		warnings = append(warnings, "IMPORT_TIMEOUT is 0 - a hung import request will block until cancelled")
	}

	return warnings
}
