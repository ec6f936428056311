package cli

import (
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/cobra"

	"github.com/roach88/simattr/internal/compiler"
)

// Error codes for command-level failures.
const (
	ErrCodeNotFound = "E001" // file or database not found
	ErrCodeCompile  = "E002" // CUE compile error
	ErrCodeGeneric  = "E003" // uncategorized failure
)

// ValidationResult holds validation results for one run.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Types  []string                   `json:"types,omitempty"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.cue>...",
		Short: "Validate object-type declaration files",
		Long: `Compile and validate CUE object-type declaration files.

Checks syntax, attribute kinds, defaults and duplicate names without
touching any document.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	decls, err := LoadDeclarations(paths)
	if err != nil {
		var ce *compiler.CompileError
		if errors.As(err, &ce) {
			formatter.Failure(ErrCodeCompile, ce.Error(), nil)
			return &ExitError{Code: ExitFailure, Message: "validation failed"}
		}
		formatter.Failure(ErrCodeNotFound, err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "validation failed", Err: err}
	}
	formatter.VerboseLog("Compiled %d declaration file(s)", len(paths))

	result := ValidationResult{Valid: true}
	for _, decl := range decls {
		result.Types = append(result.Types, decl.Tag)
	}
	if errs := compiler.Validate(decls); len(errs) > 0 {
		result.Valid = false
		result.Errors = errs
	}

	if !result.Valid {
		if opts.Format == "json" {
			formatter.Success(result)
		} else {
			for _, e := range result.Errors {
				fmt.Fprintln(formatter.Writer, e.Error())
			}
		}
		return &ExitError{Code: ExitFailure, Message: "validation failed"}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "OK: %d type(s) valid\n", len(result.Types))
	return nil
}

// LoadDeclarations compiles CUE declaration files into type declarations.
func LoadDeclarations(paths []string) ([]compiler.TypeDecl, error) {
	ctx := cuecontext.New()
	var decls []compiler.TypeDecl
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		v := ctx.CompileBytes(data, cue.Filename(path))
		fileDecls, err := compiler.CompileTypes(v)
		if err != nil {
			return nil, err
		}
		decls = append(decls, fileDecls...)
	}
	return decls, nil
}
