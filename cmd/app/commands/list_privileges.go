package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	privilegeDomain "github.com/allisson/hivelvet/internal/privilege/domain"
	privilegeUseCase "github.com/allisson/hivelvet/internal/privilege/usecase"
)

type privilegeOutput struct {
	Group string `json:"group" yaml:"group"`
	Name  string `json:"name" yaml:"name"`
}

// RunListPrivileges prints every privilege discovered from the action catalog,
// in discovery order or grouped by action group.
func RunListPrivileges(
	ctx context.Context,
	discoveryUseCase privilegeUseCase.DiscoveryUseCase,
	writer io.Writer,
	grouped bool,
	format string,
) error {
	registry, err := discoveryUseCase.Discover(ctx)
	if err != nil {
		return fmt.Errorf("failed to discover privileges: %w", err)
	}

	if grouped {
		return writeOutput(writer, format, registry.Grouped(), func(w io.Writer) {
			writeGroupedText(w, registry)
		})
	}

	records := make([]privilegeOutput, 0, len(registry))
	for _, p := range registry {
		records = append(records, privilegeOutput{Group: p.Group, Name: p.Name})
	}

	return writeOutput(writer, format, records, func(w io.Writer) {
		for _, p := range registry {
			_, _ = fmt.Fprintln(w, p.String())
		}
		_, _ = fmt.Fprintf(w, "\n%d privileges\n", len(registry))
	})
}

// writeGroupedText lists groups in the order they were first discovered.
func writeGroupedText(w io.Writer, registry privilegeDomain.Registry) {
	groups := registry.Grouped()
	seen := make(map[string]bool, len(groups))
	for _, p := range registry {
		if seen[p.Group] {
			continue
		}
		seen[p.Group] = true
		_, _ = fmt.Fprintf(w, "%s: %s\n", p.Group, strings.Join(groups[p.Group], ", "))
	}
}
