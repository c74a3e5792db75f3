package commands

import (
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	configapp "github.com/doeshing/clai-go/internal/application/config"
	"github.com/doeshing/clai-go/internal/domain"
	configinfra "github.com/doeshing/clai-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(build ContainerFunc) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect clai configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd, build)
		},
	}

	configCmd.AddCommand(
		newConfigShowCommand(build),
		newConfigPathCommand(build),
		newConfigInitCommand(build),
		newConfigValidateCommand(build),
		newConfigDiffCommand(build),
	)

	return configCmd
}

func newConfigShowCommand(build ContainerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration (file merged with environment)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd, build)
		},
	}
}

func newConfigPathCommand(build ContainerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := build(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
			return nil
		},
	}
}

func newConfigInitCommand(build ContainerFunc) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := build(cmd)
			if err != nil {
				return err
			}
			path := container.ConfigLoader.Path()
			if err := configinfra.WriteDefault(path, domain.DefaultConfig(), force); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newConfigValidateCommand(build ContainerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := build(cmd)
			if err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			if err := configapp.Validate(container.Config); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgConfigurationValid)
			return nil
		},
	}
}

func newConfigDiffCommand(build ContainerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show diff versus default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := build(cmd)
			if err != nil {
				return err
			}
			writeDiff(cmd.OutOrStdout(), domain.DefaultConfig(), container.Config)
			return nil
		},
	}
}

func showConfiguration(cmd *cobra.Command, build ContainerFunc) error {
	container, err := build(cmd)
	if err != nil {
		return err
	}
	return writeConfig(cmd.OutOrStdout(), container.Config)
}

func writeConfig(out io.Writer, cfg domain.Config) error {
	data, err := yaml.Marshal(masked(cfg))
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}

func writeDiff(out io.Writer, defaults, current domain.Config) {
	diff := cmp.Diff(masked(defaults), masked(current))
	if diff == "" {
		fmt.Fprintln(out, MsgNoDifferencesFromDefault)
		return
	}
	fmt.Fprintln(out, diff)
}

func masked(cfg domain.Config) domain.Config {
	cfg.APIKey = maskSecret(cfg.APIKey)
	cfg.AnthropicAPIKey = maskSecret(cfg.AnthropicAPIKey)
	return cfg
}

func maskSecret(secret string) string {
	switch {
	case secret == "":
		return ""
	case len(secret) <= 8:
		return "****"
	default:
		return secret[:4] + "..." + secret[len(secret)-4:]
	}
}
