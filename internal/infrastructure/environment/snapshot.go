// Package environment captures the process environment once and answers the
// questions the rest of the CLI asks about it: which shell is active, whether a
// graphical session is available, and where per-user files live.
package environment

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/host"
)

const windows = "windows"

// Snapshot is an immutable view of the environment variables and platform.
type Snapshot struct {
	goos      string
	vars      map[string]string
	container bool
}

// NewSnapshot builds a snapshot from explicit values. Tests use it to inject
// synthetic environments.
func NewSnapshot(goos string, vars map[string]string) Snapshot {
	normalized := make(map[string]string, len(vars))
	for key, value := range vars {
		normalized[normalizeKey(goos, key)] = value
	}
	return Snapshot{goos: goos, vars: normalized}
}

// Capture reads the live process environment and probes for a container runtime.
func Capture(ctx context.Context) Snapshot {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = value
	}
	snap := NewSnapshot(runtime.GOOS, vars)
	snap.container = probeContainer(ctx, runtime.GOOS)
	return snap
}

// WithContainer returns a copy with the container indicator set.
func (s Snapshot) WithContainer(container bool) Snapshot {
	s.container = container
	return s
}

// GOOS returns the platform the snapshot was taken on.
func (s Snapshot) GOOS() string {
	return s.goos
}

// IsWindows reports whether the snapshot describes a Windows host.
func (s Snapshot) IsWindows() bool {
	return s.goos == windows
}

// Get returns the variable value, or "" when unset. Windows lookups are case-insensitive.
func (s Snapshot) Get(key string) string {
	return s.vars[normalizeKey(s.goos, key)]
}

// Has reports whether the variable is set to a non-empty value.
func (s Snapshot) Has(key string) bool {
	return s.Get(key) != ""
}

// InContainer reports whether a container runtime was detected.
func (s Snapshot) InContainer() bool {
	return s.container || s.Has("container")
}

// HomeDir resolves the user's home directory from the snapshot.
func (s Snapshot) HomeDir() string {
	if home := s.Get("HOME"); home != "" {
		return home
	}
	if s.IsWindows() {
		if profile := s.Get("USERPROFILE"); profile != "" {
			return profile
		}
	}
	return "."
}

// DataHome resolves XDG_DATA_HOME on non-Windows hosts.
func (s Snapshot) DataHome() string {
	if dir := s.Get("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(s.HomeDir(), ".local", "share")
}

func normalizeKey(goos, key string) string {
	if goos == windows {
		return strings.ToUpper(key)
	}
	return key
}

var containerMarkers = []string{"/.dockerenv", "/run/.containerenv"}

func probeContainer(ctx context.Context, goos string) bool {
	if goos == windows {
		return false
	}
	for _, marker := range containerMarkers {
		if _, err := os.Stat(marker); err == nil {
			return true
		}
	}

	cctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	system, role, err := host.VirtualizationWithContext(cctx)
	if err != nil || role != "guest" {
		return false
	}
	switch system {
	case "docker", "lxc", "podman", "containerd", "kubepods":
		return true
	default:
		return false
	}
}
