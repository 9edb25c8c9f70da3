// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"gopkg.in/yaml.v3"

	"github.com/allisson/hivelvet/internal/action"
	"github.com/allisson/hivelvet/internal/app"
	privilegeDomain "github.com/allisson/hivelvet/internal/privilege/domain"
)

// Output formats accepted by the --format flag.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := migrate.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// writeOutput renders v as JSON or YAML, or calls text for the text format.
func writeOutput(writer io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case FormatText, "":
		text(writer)
		return nil
	case FormatJSON:
		jsonBytes, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(writer, string(jsonBytes))
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("invalid format: %s (valid options: text, json, yaml)", format)
	}
}

// parsePrivileges converts "Group.Name" or "Actions.Group.Name" strings into
// privileges.
func parsePrivileges(values []string) ([]privilegeDomain.Privilege, error) {
	privileges := make([]privilegeDomain.Privilege, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		name := value
		if !strings.HasPrefix(name, action.Namespace+".") {
			name = action.Namespace + "." + name
		}

		id, ok := action.ParseName(name)
		if !ok {
			return nil, fmt.Errorf("invalid privilege %q (expected Group.Name)", value)
		}
		privileges = append(privileges, privilegeDomain.FromActionID(id))
	}
	return privileges, nil
}
