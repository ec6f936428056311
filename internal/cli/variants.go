package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/simattr/internal/equation"
	"github.com/roach88/simattr/internal/schema"
)

// VariantInfo describes one equation variant for display.
type VariantInfo struct {
	Variant     string              `json:"variant"`
	TypeTag     string              `json:"type_tag"`
	Priority    int64               `json:"priority"`
	Groups      map[string][]string `json:"groups"`
	Constraints []string            `json:"constraints,omitempty"`

	groupOrder []string
}

// NewVariantsCommand creates the variants command.
func NewVariantsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "variants",
		Short:         "List equation variants, their attribute groups and defaults",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVariants(rootOpts, cmd)
		},
	}
}

func runVariants(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	reg := schema.NewRegistry()
	var infos []VariantInfo
	for _, v := range equation.Variants() {
		eq, err := equation.Compose(reg, v)
		if err != nil {
			formatter.Failure(ErrCodeGeneric, err.Error(), nil)
			return &ExitError{Code: ExitCommandError, Message: "variants failed", Err: err}
		}
		info := VariantInfo{
			Variant:  string(v),
			TypeTag:  v.TypeTag(),
			Priority: eq.Priority(),
			Groups:   make(map[string][]string),
		}
		for _, group := range eq.Groups() {
			info.Groups[group] = eq.KeysInGroup(group)
			info.groupOrder = append(info.groupOrder, group)
		}
		for _, c := range eq.Constraints() {
			info.Constraints = append(info.Constraints,
				fmt.Sprintf("%s excludes %s (%s)", c.When, c.Excludes, c.Note))
		}
		infos = append(infos, info)
	}

	if opts.Format == "json" {
		return formatter.Success(infos)
	}
	for _, info := range infos {
		fmt.Fprintf(formatter.Writer, "%s (priority %d)\n", info.TypeTag, info.Priority)
		for _, group := range info.groupOrder {
			fmt.Fprintf(formatter.Writer, "  [%s] %v\n", group, info.Groups[group])
		}
		for _, c := range info.Constraints {
			fmt.Fprintf(formatter.Writer, "  constraint: %s\n", c)
		}
	}
	return nil
}
