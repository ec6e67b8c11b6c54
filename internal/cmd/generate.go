package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitaimsg/gitaimsg/internal/app"
)

// NewGenerateCmd creates the generate command. Unlike the hook path it is an
// interactive command and reports failures with a non-zero exit.
func NewGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate a draft commit message and print it to stdout",
		Long: `Generate runs the same pipeline as the commit hook against the currently
staged changes and prints the draft to stdout instead of writing a
commit-message buffer. Useful for previewing what the hook would produce.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := app.NewHookService(
				app.WithConfigLoader(managerFromFlags(cmd).Load),
			)

			text, err := svc.Generate(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
