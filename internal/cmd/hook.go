package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gitaimsg/gitaimsg/internal/app"
	apperrors "github.com/gitaimsg/gitaimsg/internal/pkg/errors"
)

// NewHookCmd creates the hook command, the prepare-commit-msg entry point.
//
// This command is the "never block the commit" boundary: every failure from
// every stage, including panics, is converted into a logged no-op and a zero
// exit status. Diagnostics go to stderr only.
func NewHookCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "hook <commit-msg-file> [source] [sha]",
		Short:  "Run the prepare-commit-msg pipeline (installed by 'gitaimsg install')",
		Hidden: true,
		Args:   cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() {
				if r := recover(); r != nil {
					apperrors.Error("hook panicked: %v", r)
				}
			}()

			apperrors.SetRunID(uuid.NewString()[:8])

			messageFile := args[0]
			sourceTag := ""
			if len(args) > 1 {
				sourceTag = args[1]
			}

			svc := app.NewHookService(
				app.WithConfigLoader(managerFromFlags(cmd).Load),
			)
			if err := svc.Run(cmd.Context(), messageFile, sourceTag); err != nil {
				apperrors.LogError(err)
			}

			// The commit must proceed no matter what happened above.
			return nil
		},
	}
}
