// Package env loads bootstrap configuration from the process environment,
// grounded on gallery-so-go-gallery's env package: viper-backed lookups with
// validator-enforced required variables.
package env

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var (
	required = map[string]bool{}
	v        = validator.New()
)

func init() {
	viper.AutomaticEnv()
}

// RegisterRequired marks name as a required environment variable: Validate
// will fail if it has no value.
func RegisterRequired(name string) {
	required[name] = true
}

// GetString returns the string value of name, or the default if unset.
func GetString(name string, fallback string) string {
	if !viper.IsSet(name) || viper.GetString(name) == "" {
		return fallback
	}
	return viper.GetString(name)
}

// GetInt returns the int value of name, or the default if unset.
func GetInt(name string, fallback int) int {
	if !viper.IsSet(name) || viper.GetString(name) == "" {
		return fallback
	}
	return viper.GetInt(name)
}

// Validate checks that every variable registered via RegisterRequired has a
// non-empty value, returning a single combined error naming all that are
// missing. Bootstrap is expected to treat this as fatal.
func Validate() error {
	var missing []string
	for name := range required {
		if err := v.Var(viper.GetString(name), "required"); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
