package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var installSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

// hookScript is the prepare-commit-msg script installed into .git/hooks.
// It forwards git's positional arguments unchanged; the hook command itself
// guarantees a zero exit, the trailing exit 0 covers a missing binary.
const hookScript = `#!/bin/sh
# Installed by gitaimsg. Drafts a commit message from staged changes.
%s hook "$1" "$2" "$3" || true
exit 0
`

// NewInstallCmd creates the install command, which wires the pipeline into
// the repository's prepare-commit-msg lifecycle point.
func NewInstallCmd() *cobra.Command {
	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install the prepare-commit-msg hook into the current repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			gitDir := ".git"
			if info, err := os.Stat(gitDir); err != nil || !info.IsDir() {
				return fmt.Errorf("current directory is not a git repository root (no .git found)")
			}

			hooksDir := filepath.Join(gitDir, "hooks")
			if err := os.MkdirAll(hooksDir, 0755); err != nil {
				return fmt.Errorf("failed to create hooks directory: %w", err)
			}

			hookPath := filepath.Join(hooksDir, "prepare-commit-msg")
			if _, err := os.Stat(hookPath); err == nil && !force {
				overwrite := false
				confirm := huh.NewConfirm().
					Title(fmt.Sprintf("%s already exists. Overwrite?", hookPath)).
					Value(&overwrite)
				if err := confirm.Run(); err != nil {
					return err
				}
				if !overwrite {
					return fmt.Errorf("hook %s already exists; rerun with --force to overwrite", hookPath)
				}
			}

			exe, err := os.Executable()
			if err != nil {
				exe = "gitaimsg"
			} else {
				exe, _ = filepath.Abs(exe)
			}

			script := fmt.Sprintf(hookScript, exe)
			if err := os.WriteFile(hookPath, []byte(script), 0755); err != nil {
				return fmt.Errorf("failed to write hook file: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(),
				installSuccessStyle.Render(fmt.Sprintf("Hook installed to %s", hookPath)))
			return nil
		},
	}

	installCmd.Flags().Bool("force", false, "Overwrite an existing hook without confirmation")
	return installCmd
}
