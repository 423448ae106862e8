package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/edukit-io/canvas-client/internal/constants"
)

// cmdContext is the base context for one command invocation.
func cmdContext() context.Context {
	return context.Background()
}

// renderOutput writes v as JSON or YAML per the --output flag, or calls the
// table renderer for the default format.
func renderOutput(v interface{}, renderTable func() error) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encoding JSON output: %w", err)
		}

		return nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encoding YAML output: %w", err)
		}

		return nil
	case constants.FormatTable, "":
		return renderTable()
	default:
		return fmt.Errorf("'%s': %w", output, constants.ErrInvalidOutput)
	}
}

// parseID converts a positional ID argument.
func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got '%s'", what, arg)
	}

	return id, nil
}

// formatTime renders an optional timestamp for table cells.
func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format("2006-01-02")
}
