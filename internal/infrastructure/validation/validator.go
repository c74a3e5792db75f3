package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/clai-go/assets"
	"github.com/doeshing/clai-go/internal/domain"
	"github.com/doeshing/clai-go/internal/pkg/filesystem"
	"github.com/doeshing/clai-go/internal/ports"
)

// Validator implements the CommandValidator port. It is a heuristic gate: it
// catches empty output, prose wrapped around a command, oversized replies and a
// handful of destructive patterns. It does not parse shell syntax.
type Validator struct {
	patterns  []compiledRule
	maxLength int
}

type compiledRule struct {
	re   *regexp.Regexp
	rule Rule
}

// Rule describes a regex that makes a command unacceptable.
type Rule struct {
	Pattern string `yaml:"pattern"`
	Message string `yaml:"message"`
}

// RulesFile is the YAML schema root.
type RulesFile struct {
	Rules struct {
		DestructivePatterns []Rule `yaml:"destructive_patterns"`
	} `yaml:"rules"`
}

// New loads rules from path, or the embedded defaults when path is empty or missing.
func New(path string, maxLength int) (*Validator, error) {
	rules, err := loadRules(path)
	if err != nil {
		return nil, err
	}

	compiled := make([]compiledRule, 0, len(rules.Rules.DestructivePatterns))
	for _, rule := range rules.Rules.DestructivePatterns {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", rule.Pattern, err)
		}
		compiled = append(compiled, compiledRule{re: re, rule: rule})
	}

	if maxLength <= 0 {
		maxLength = domain.DefaultMaxCommandLength
	}
	return &Validator{patterns: compiled, maxLength: maxLength}, nil
}

// Validate implements ports.CommandValidator.
func (v *Validator) Validate(command string) bool {
	return v.Check(command).OK
}

// Check returns the verdict together with the rejection reason.
func (v *Validator) Check(command string) domain.Verdict {
	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return reject("empty command")
	}
	if utf8.RuneCountInString(trimmed) > v.maxLength {
		return reject(fmt.Sprintf("command longer than %d characters", v.maxLength))
	}

	lines := nonEmptyLines(trimmed)
	if looksLikeProse(lines[0]) {
		return reject("response starts with explanatory text")
	}
	for i := 1; i < len(lines); i++ {
		if !continues(lines[i-1]) {
			return reject("multi-line response")
		}
	}
	if strings.Contains(trimmed, "```") {
		return reject("response contains markdown fences")
	}

	for _, pattern := range v.patterns {
		if pattern.re.MatchString(trimmed) {
			return reject(pattern.rule.Message)
		}
	}
	return domain.Verdict{OK: true}
}

func reject(reason string) domain.Verdict {
	return domain.Verdict{OK: false, Reason: reason}
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// continues reports whether the next line is part of the same command.
func continues(line string) bool {
	for _, suffix := range []string{`\`, "|", "&&", "||", "`", "{", "(", ";"} {
		if strings.HasSuffix(line, suffix) {
			return true
		}
	}
	fields := strings.Fields(line)
	switch fields[len(fields)-1] {
	case "do", "then", "else":
		return true
	}
	return false
}

var prosePrefixes = []string{
	"here is", "here's", "this command", "the command", "sure", "certainly",
	"note:", "explanation:", "to do this", "you can", "i ",
}

func looksLikeProse(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	for _, prefix := range prosePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func loadRules(path string) (RulesFile, error) {
	var rules RulesFile
	data := assets.DefaultRulesYAML
	if path != "" {
		raw, err := os.ReadFile(expandPath(path))
		switch {
		case err == nil:
			data = raw
		case errors.Is(err, fs.ErrNotExist):
			// fall back to defaults
		default:
			return RulesFile{}, err
		}
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RulesFile{}, fmt.Errorf("parse rules: %w", err)
	}
	if len(rules.Rules.DestructivePatterns) == 0 && path != "" {
		if err := yaml.Unmarshal(assets.DefaultRulesYAML, &rules); err != nil {
			return RulesFile{}, err
		}
	}
	return rules, nil
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.CommandValidator = (*Validator)(nil)
