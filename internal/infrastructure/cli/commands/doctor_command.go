package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/clai-go/internal/domain"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(build ContainerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := build(cmd)
			if err != nil {
				return err
			}
			if container.DoctorService == nil {
				return errors.New("doctor service unavailable")
			}

			report, err := container.DoctorService.Run(cmd.Context())

			// Display report even if there were errors
			displayDoctorReport(cmd.OutOrStdout(), report)

			if err != nil {
				return fmt.Errorf("diagnostics completed with errors: %w", err)
			}
			if report.Failed() {
				return domain.NewError(domain.KindConfiguration, "diagnostics found problems", nil)
			}
			return nil
		},
	}
}

// displayDoctorReport displays the health check report
func displayDoctorReport(out io.Writer, report domain.HealthReport) {
	fmt.Fprintf(out, "Shell: %s, headless: %t\n", report.Shell, report.Headless)
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
}
