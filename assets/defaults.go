package assets

import (
	_ "embed"
)

// DefaultRulesYAML contains the embedded destructive-pattern rules used by the validator.
//
//go:embed defaults/rules.yaml
var DefaultRulesYAML []byte
