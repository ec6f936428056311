package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/simattr/internal/attr"
	"github.com/roach88/simattr/internal/document"
)

// InspectResult is one instance's attribute state, grouped for display.
type InspectResult struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Groups []InspectGroup `json:"groups"`
}

// InspectGroup is one attribute group in declaration order.
type InspectGroup struct {
	Name       string             `json:"name"`
	Attributes []InspectAttribute `json:"attributes"`
}

// InspectAttribute is one attribute's descriptor and current value.
type InspectAttribute struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Doc      string `json:"doc,omitempty"`
	ReadOnly bool   `json:"readOnly,omitempty"`
	Hidden   bool   `json:"hidden,omitempty"`
	Value    string `json:"value"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath, id string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print one instance's attributes, grouped and ordered",
		Long: `Load a document, migrate it if needed, and print one instance's
attribute groups in declaration order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, dbPath, id, cmd)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "document database path")
	cmd.Flags().StringVar(&id, "id", "", "instance ID")
	cmd.MarkFlagRequired("db")
	cmd.MarkFlagRequired("id")
	return cmd
}

func runInspect(opts *RootOptions, dbPath, id string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(dbPath); err != nil {
		formatter.Failure(ErrCodeNotFound, fmt.Sprintf("document not found: %s", dbPath), nil)
		return &ExitError{Code: ExitCommandError, Message: "inspect failed", Err: err}
	}

	doc, err := document.Open(cmd.Context(), dbPath)
	if err != nil {
		formatter.Failure(ErrCodeGeneric, err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "inspect failed", Err: err}
	}
	defer doc.Close()

	inst, ok := doc.Get(id)
	if !ok {
		formatter.Failure(ErrCodeNotFound, fmt.Sprintf("no instance %s", id), nil)
		return &ExitError{Code: ExitCommandError, Message: "inspect failed"}
	}

	result := InspectResult{ID: id, Type: inst.Type()}
	for _, group := range inst.Groups() {
		ig := InspectGroup{Name: group}
		for _, name := range inst.KeysInGroup(group) {
			d, _ := inst.Descriptor(name)
			v, err := inst.Get(name)
			if err != nil {
				return &ExitError{Code: ExitCommandError, Message: "inspect failed", Err: err}
			}
			data, err := attr.MarshalValue(v)
			if err != nil {
				return &ExitError{Code: ExitCommandError, Message: "inspect failed", Err: err}
			}
			ig.Attributes = append(ig.Attributes, InspectAttribute{
				Name:     name,
				Kind:     d.Kind.String(),
				Doc:      d.Doc,
				ReadOnly: d.ReadOnly,
				Hidden:   d.Hidden,
				Value:    string(data),
			})
		}
		result.Groups = append(result.Groups, ig)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "%s (%s)\n", result.ID, result.Type)
	for _, g := range result.Groups {
		fmt.Fprintf(formatter.Writer, "[%s]\n", g.Name)
		for _, a := range g.Attributes {
			flags := ""
			if a.ReadOnly {
				flags += " ro"
			}
			if a.Hidden {
				flags += " hidden"
			}
			fmt.Fprintf(formatter.Writer, "  %-40s %-12s%s %s\n", a.Name, a.Kind, flags, a.Value)
		}
	}
	return nil
}
