package app

import (
	"context"

	"github.com/doeshing/clai-go/internal/application/command"
	"github.com/doeshing/clai-go/internal/application/doctor"
	"github.com/doeshing/clai-go/internal/domain"
	"github.com/doeshing/clai-go/internal/infrastructure/ai"
	"github.com/doeshing/clai-go/internal/infrastructure/config"
	"github.com/doeshing/clai-go/internal/infrastructure/delivery"
	"github.com/doeshing/clai-go/internal/infrastructure/environment"
	"github.com/doeshing/clai-go/internal/infrastructure/validation"
	"github.com/doeshing/clai-go/internal/pkg/logger"
)

// Options are the process-level inputs to the dependency graph.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config        domain.Config
	ConfigLoader  *config.Loader
	Env           environment.Snapshot
	Shell         domain.ShellVariant
	Logger        *logger.Logrus
	Generator     *command.Generator
	Validator     *validation.Validator
	Clipboard     *delivery.Clipboard
	History       *delivery.History
	Deliverer     *delivery.Resolver
	DoctorService *doctor.Service
}

// BuildContainer constructs the dependency graph. Config is loaded but not
// validated so that doctor and config can report problems. The presenter on
// Deliverer is left for the CLI layer to set.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Options{
		Verbose: opts.Verbose,
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
	})

	validator, err := validation.New(cfg.Validation.RulesFile, cfg.Validation.MaxLength)
	if err != nil {
		log.Warn("falling back to built-in validation rules", map[string]interface{}{"error": err.Error()})
		validator, err = validation.New("", cfg.Validation.MaxLength)
		if err != nil {
			return nil, err
		}
	}

	env := environment.Capture(ctx)
	shell := environment.DetectShell(env)
	clipboard := delivery.NewClipboard()
	history := delivery.NewHistory(env)

	generator := &command.Generator{
		Factory: ai.NewFactory(cfg, nil),
		Timeout: cfg.Timeout,
		Logger:  log,
		OS:      env.GOOS(),
	}

	deliverer := &delivery.Resolver{
		Env:           env,
		Clipboard:     clipboard,
		History:       history,
		Logger:        log,
		PreferHistory: cfg.Delivery.PreferHistory,
		CmdStrict:     cfg.Delivery.CmdStrict,
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Clipboard:      clipboard,
		History:        history,
		Validator:      validator,
		Shell:          shell,
		Headless:       environment.IsHeadless(env),
	}

	log.Debug("container ready", map[string]interface{}{
		"shell":    shell.String(),
		"headless": doctorService.Headless,
		"model":    cfg.DefaultModel,
	})

	return &Container{
		Config:        cfg,
		ConfigLoader:  cfgLoader,
		Env:           env,
		Shell:         shell,
		Logger:        log,
		Generator:     generator,
		Validator:     validator,
		Clipboard:     clipboard,
		History:       history,
		Deliverer:     deliverer,
		DoctorService: doctorService,
	}, nil
}

// Close releases the log file, if any.
func (c *Container) Close() error {
	if c.Logger == nil {
		return nil
	}
	return c.Logger.Close()
}
