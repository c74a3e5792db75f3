package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/clai-go/internal/domain"
	"github.com/doeshing/clai-go/internal/pkg/filesystem"
	"github.com/doeshing/clai-go/internal/ports"
)

// Loader merges ~/.clai/config.yaml (overridable via CLAI_CONFIG) with the
// environment. Environment variables win over the file; a .env file in the
// working directory is loaded first but never overrides the real environment.
type Loader struct {
	overridePath string
	envFiles     []string
}

// NewLoader builds a loader. An empty path means the default location.
func NewLoader(path string) *Loader {
	return &Loader{overridePath: path, envFiles: []string{".env"}}
}

// WithEnvFiles replaces the dotenv files read before the environment is bound.
func (l *Loader) WithEnvFiles(files ...string) *Loader {
	l.envFiles = files
	return l
}

// Load implements ports.ConfigProvider.
func (l *Loader) Load(context.Context) (domain.Config, error) {
	if err := loadEnvFiles(l.envFiles); err != nil {
		return domain.Config{}, domain.NewError(domain.KindConfiguration, "load .env", err)
	}

	v := viper.New()
	setDefaults(v, domain.DefaultConfig())
	if err := bindEnv(v); err != nil {
		return domain.Config{}, domain.NewError(domain.KindConfiguration, "bind environment", err)
	}

	path := l.Path()
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return domain.Config{}, domain.NewError(domain.KindConfiguration, fmt.Sprintf("read %s", path), err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return domain.Config{}, domain.NewError(domain.KindConfiguration, fmt.Sprintf("stat %s", path), err)
	}

	var cfg domain.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return domain.Config{}, domain.NewError(domain.KindConfiguration, "decode config", err)
	}
	return cfg, nil
}

// Path returns the config file location.
func (l *Loader) Path() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv(domain.EnvConfigPath); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".clai", "config.yaml")
}

// WriteDefault writes cfg to path, refusing to clobber an existing file unless force is set.
func WriteDefault(path string, cfg domain.Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return err
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

func loadEnvFiles(files []string) error {
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return err
		}
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg domain.Config) {
	v.SetDefault("default_model", cfg.DefaultModel)
	v.SetDefault("base_url", cfg.BaseURL)
	v.SetDefault("timeout", cfg.Timeout)
	v.SetDefault("delivery.cmd_strict", cfg.Delivery.CmdStrict)
	v.SetDefault("delivery.prefer_history", cfg.Delivery.PreferHistory)
	v.SetDefault("validation.max_length", cfg.Validation.MaxLength)
	v.SetDefault("log.level", cfg.Log.Level)
}

func bindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"api_key":           domain.EnvAPIKey,
		"anthropic_api_key": domain.EnvAnthropicAPIKey,
		"default_model":     domain.EnvDefaultModel,
		"base_url":          domain.EnvBaseURL,
		"timeout":           domain.EnvTimeout,
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return err
		}
	}
	return nil
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*Loader)(nil)
