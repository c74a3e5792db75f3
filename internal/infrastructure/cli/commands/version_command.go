package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/doeshing/clai-go/internal/domain"
	"github.com/doeshing/clai-go/internal/version"
)

// NewVersionCommand prints build metadata and, when the configuration loads,
// the model and route a query would use.
func NewVersionCommand(build ContainerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show clai version and active model",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			writeBuildInfo(out)

			container, err := build(cmd)
			if err != nil {
				fmt.Fprintf(out, "Config: unavailable (%v)\n", err)
				return nil
			}
			writeModelInfo(out, container.Config, container.ConfigLoader.Path())
			return nil
		},
	}
}

func writeBuildInfo(out io.Writer) {
	fmt.Fprintf(out, "clai %s (%s/%s, %s)\n", version.Version, runtime.GOOS, runtime.GOARCH, runtime.Version())
	if version.Commit != "" {
		fmt.Fprintf(out, "Commit: %s\n", version.Commit)
	}
	if version.BuildDate != "" {
		fmt.Fprintf(out, "Built: %s\n", version.BuildDate)
	}
}

func writeModelInfo(out io.Writer, cfg domain.Config, configPath string) {
	route := "OpenRouter"
	endpoint := cfg.BaseURL
	if endpoint == "" {
		endpoint = domain.DefaultBaseURL
	}
	if cfg.UsesAnthropic(cfg.DefaultModel) {
		route = "Anthropic"
		endpoint = "api.anthropic.com"
	}
	fmt.Fprintf(out, "Model: %s via %s (%s)\n", cfg.DefaultModel, route, endpoint)
	fmt.Fprintf(out, "Config: %s\n", configPath)
}
