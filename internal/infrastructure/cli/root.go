package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/doeshing/clai-go/internal/app"
	appconfig "github.com/doeshing/clai-go/internal/application/config"
	"github.com/doeshing/clai-go/internal/application/command"
	"github.com/doeshing/clai-go/internal/domain"
	"github.com/doeshing/clai-go/internal/infrastructure/cli/commands"
	"github.com/doeshing/clai-go/internal/version"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

const examples = `  clai create a docker redis container
  clai list all files in current directory --shell powershell
  clai update nginx config -m anthropic/claude-3-haiku
  clai restart apache service -y`

// NewRootCmd wires the cobra root command. The container is built lazily so
// that flags are parsed first.
func NewRootCmd(opts Options) *cobra.Command {
	var (
		model   string
		shell   string
		yes     bool
		debug   bool
		timeout time.Duration
	)

	var container *app.Container
	build := func(cmd *cobra.Command) (*app.Container, error) {
		if container != nil {
			return container, nil
		}
		c, err := app.BuildContainer(cmd.Context(), app.Options{Verbose: opts.Verbose || debug})
		if err != nil {
			return nil, err
		}
		container = c
		return container, nil
	}

	root := &cobra.Command{
		Use:     "clai [query...]",
		Short:   "Generate shell commands from natural language using AI",
		Example: examples,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := build(cmd)
			if err != nil {
				return err
			}
			if err := appconfig.Validate(c.Config); err != nil {
				return err
			}

			query := strings.TrimSpace(strings.Join(args, " "))
			req := domain.GenerationRequest{Query: query, Shell: c.Shell, Model: c.Config.DefaultModel}
			if model != "" {
				req.Model = model
			}
			// a missing key is reported even when there is nothing to generate
			if err := appconfig.RequireCredential(c.Config, req.Model); err != nil {
				return err
			}
			if query == "" {
				return cmd.Help()
			}
			if shell != "" {
				req.Shell = domain.ParseShellVariant(shell)
				if req.Shell == domain.ShellUnknown {
					return domain.NewError(domain.KindConfiguration,
						fmt.Sprintf("unsupported shell %q (supported: %s)", shell, supportedShells()), nil)
				}
			}
			if cmd.Flags().Changed("timeout") {
				c.Generator.Timeout = timeout
			}

			out := cmd.OutOrStdout()
			interactive := isTerminal(os.Stdin) && isTerminal(os.Stdout)
			presenter := NewPresenter(out, isTerminal(os.Stdout))
			c.Deliverer.Presenter = presenter

			session := &command.Session{
				Generator: withProgress(c.Generator, out, isTerminal(os.Stdout)),
				Validator: c.Validator,
				Deliverer: c.Deliverer,
				Prompter:  NewPrompter(cmd.InOrStdin(), out, interactive),
				Presenter: presenter,
				Logger:    c.Logger,
			}
			result, err := session.Run(cmd.Context(), req, yes)
			c.Logger.Debug("session finished", map[string]interface{}{
				"generations": result.Generations,
				"cancelled":   result.Cancelled,
				"clipboard":   result.Outcome.ClipboardSucceeded,
				"history":     result.Outcome.HistorySucceeded,
			})
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if container == nil {
				return nil
			}
			return container.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().StringVarP(&model, "model", "m", "", "AI model to use (default from DEFAULT_MODEL or config)")
	root.Flags().StringVar(&shell, "shell", "", fmt.Sprintf("Target shell (%s; default: detected)", supportedShells()))
	root.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation and automatically accept/copy command")
	root.Flags().DurationVar(&timeout, "timeout", domain.DefaultRequestTimeout, "Provider request timeout")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable verbose logging")

	root.AddCommand(
		commands.NewDoctorCommand(build),
		commands.NewConfigCommand(build),
		commands.NewVersionCommand(build),
	)
	return root
}

func supportedShells() string {
	names := make([]string, 0, len(domain.SupportedShells()))
	for _, shell := range domain.SupportedShells() {
		names = append(names, shell.String())
	}
	return strings.Join(names, ", ")
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
