// Package cmd contains the CLI command definitions for gitaimsg.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gitaimsg/gitaimsg/internal/pkg/config"
	apperrors "github.com/gitaimsg/gitaimsg/internal/pkg/errors"
)

// NewRootCmd creates the root command for the gitaimsg CLI.
func NewRootCmd(version, commitHash, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gitaimsg",
		Short: "AI-drafted commit messages from staged changes",
		Long: `gitaimsg drafts a commit message from your staged changes by calling a
configurable LLM provider (Ollama, OpenAI, Gemini) from the
prepare-commit-msg hook.

The hook path never blocks a commit: any failure is logged to stderr and
the commit proceeds with whatever message source would otherwise apply.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			apperrors.SetVerbose(verbose)
		},
	}

	rootCmd.SetVersionTemplate(`gitaimsg {{.Version}}
Commit: ` + commitHash + `
Built:  ` + date + "\n")

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging to stderr")
	rootCmd.PersistentFlags().String("config", "", "User config file path (default: ~/.config/gitaimsg/config.toml)")
	rootCmd.PersistentFlags().String("provider", "", "Provider override (ollama, openai, gemini)")
	rootCmd.PersistentFlags().String("model", "", "Model override")

	rootCmd.AddCommand(NewHookCmd())
	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewInstallCmd())

	return rootCmd
}

// managerFromFlags builds a config manager honoring the persistent flags.
// Flag overrides outrank every file and environment layer.
func managerFromFlags(cmd *cobra.Command) *config.Manager {
	userPath, _ := cmd.Flags().GetString("config")
	mgr := config.NewManager(userPath, "")

	if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
		mgr.SetOverride("gitaimsg.provider", provider)
	}
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		mgr.SetOverride("gitaimsg.model", model)
	}
	return mgr
}
