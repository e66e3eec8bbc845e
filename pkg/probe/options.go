package probe

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Options configures a Probe
type Options struct {
	// Target is the base URL of the file service, e.g. http://localhost:8080
	Target string `json:"target" validate:"required,url"`
	// Timeout applied to each request, zero waits forever
	Timeout time.Duration `json:"timeout" validate:"min=0"`
	// Output receives the two printed lines of every run
	Output io.Writer `json:"-" validate:"required"`
	// Client overrides the HTTP client built from Timeout
	Client *http.Client `json:"-"`
	// TokenGenerator overrides the random token generation
	TokenGenerator func() string `json:"-"`
}

// OptionsFromConfig builds the options from the probe.* configuration keys
func OptionsFromConfig(output io.Writer) Options {
	return Options{
		Target:  viper.GetString("probe.target"),
		Timeout: time.Duration(viper.GetInt("probe.timeout")) * time.Second,
		Output:  output,
	}
}

func (o *Options) Validate() error {
	validate := validator.New()
	if err := validate.Struct(o); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("%s failed on the '%s' rule", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("invalid probe options: %s", strings.Join(messages, ", "))
		}
		return fmt.Errorf("invalid probe options: %w", err)
	}
	if !strings.HasPrefix(o.Target, "http://") && !strings.HasPrefix(o.Target, "https://") {
		return fmt.Errorf("invalid probe options: target %q must be an http or https URL", o.Target)
	}
	return nil
}
