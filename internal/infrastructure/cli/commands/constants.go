package commands

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/clai-go/internal/app"
)

// ContainerFunc builds (or returns the already built) dependency container.
type ContainerFunc func(*cobra.Command) (*app.Container, error)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
)
