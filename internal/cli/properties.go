package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/amazing/internal/property"
)

// PropertyInfo describes one catalog entry in JSON output.
type PropertyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewPropertiesCommand creates the properties command.
func NewPropertiesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "List available properties",
		Long: `List every property in catalog order, with a short description.

Examples:
  amazing properties
  amazing properties --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProperties(opts, cmd)
		},
	}

	return cmd
}

func runProperties(opts *RootOptions, cmd *cobra.Command) error {
	reg := property.NewRegistry()

	infos := make([]PropertyInfo, 0, len(reg.All()))
	width := 0
	for _, p := range reg.All() {
		infos = append(infos, PropertyInfo{Name: string(p.Name), Description: p.Description})
		width = max(width, len(p.Name))
	}

	lines := make([]string, 0, len(infos)+1)
	lines = append(lines, fmt.Sprintf("Available properties: [%s]", strings.Join(reg.Strings(), ", ")))
	for _, info := range infos {
		lines = append(lines, fmt.Sprintf("  %-*s  %s", width, info.Name, info.Description))
	}

	return opts.formatter(cmd).Lines(lines, infos)
}
