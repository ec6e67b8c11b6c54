package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gitaimsg/gitaimsg/internal/pkg/config"
)

var (
	configKeyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	configValueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	configSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
)

// NewConfigCmd creates the config command with its subcommands.
func NewConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gitaimsg configuration",
		Long: `Manage the layered gitaimsg configuration. Precedence, lowest first:
built-in defaults, user config file, repository .gitaimsg.toml,
GITAIMSG_* environment variables.`,
	}

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigGetCmd())
	configCmd.AddCommand(newConfigSetCmd())
	configCmd.AddCommand(newConfigListCmd())
	configCmd.AddCommand(newConfigPathCmd())

	return configCmd
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write an example user-level config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := managerFromFlags(cmd)
			if err := mgr.Init(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config file created at %s\n", mgr.UserPath())
			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a resolved configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := managerFromFlags(cmd)
			if _, err := mgr.Load(); err != nil {
				return err
			}
			value, err := mgr.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a value in the user-level config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := managerFromFlags(cmd)
			if _, err := mgr.Load(); err != nil {
				return err
			}
			if err := mgr.Set(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := managerFromFlags(cmd)
			cfg, err := mgr.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, configSectionStyle.Render("[gitaimsg]"))
			printKV(out, "provider", cfg.General.Provider)
			printKV(out, "model", cfg.General.Model)
			printKV(out, "max_diff_chars", fmt.Sprintf("%d", cfg.General.MaxDiffChars))
			printKV(out, "timeout_s", fmt.Sprintf("%d", cfg.General.TimeoutS))
			printKV(out, "temperature", fmt.Sprintf("%g", cfg.General.Temperature))
			printKV(out, "top_p", fmt.Sprintf("%g", cfg.General.TopP))
			printKV(out, "enabled", fmt.Sprintf("%v", cfg.General.Enabled))

			providers := map[string]config.ProviderSettings{
				config.ProviderOllama: cfg.Providers.Ollama,
				config.ProviderOpenAI: cfg.Providers.OpenAI,
				config.ProviderGemini: cfg.Providers.Gemini,
			}
			names := make([]string, 0, len(providers))
			for name := range providers {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				ps := providers[name]
				fmt.Fprintln(out)
				fmt.Fprintln(out, configSectionStyle.Render("[provider."+name+"]"))
				printKV(out, "base_url", ps.BaseURL)
				if ps.APIKeyEnv != "" {
					printKV(out, "api_key_env", ps.APIKeyEnv)
					if ps.APIKey != "" {
						printKV(out, "api_key", config.MaskAPIKey(ps.APIKey))
					}
				}
			}
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := managerFromFlags(cmd)
			fmt.Fprintf(cmd.OutOrStdout(), "user: %s\nrepo: %s\n", mgr.UserPath(), mgr.RepoPath())
			return nil
		},
	}
}

func printKV(out io.Writer, key, value string) {
	fmt.Fprintf(out, "%s = %s\n", configKeyStyle.Render(key), configValueStyle.Render(value))
}
