// ABOUTME: Feature toggles for the suggest API and evaluation tools
// ABOUTME: Flags resolve from overrides, then FEATURE_* environment variables, then defaults

package featureflags

import (
	"context"
	"os"
	"sort"
	"strings"
	"sync"
)

// FeatureFlag names a toggle.
type FeatureFlag string

const (
	// SearchCacheEnabled caches successful retrieval results
	SearchCacheEnabled FeatureFlag = "search_cache_enabled"

	// InlineJudgement fills the judgement column during evaluation runs
	InlineJudgement FeatureFlag = "inline_judgement"

	// CorrectionsEnabled applies the correction table before retrieval
	CorrectionsEnabled FeatureFlag = "corrections_enabled"

	// RateLimitEnabled turns on the API rate limiter
	RateLimitEnabled FeatureFlag = "rate_limit_enabled"
)

// Defaults are used when neither an override nor an environment value is set.
var Defaults = map[FeatureFlag]bool{
	SearchCacheEnabled: true,
	InlineJudgement:    false,
	CorrectionsEnabled: true,
	RateLimitEnabled:   true,
}

// Known returns every defined flag in name order.
func Known() []FeatureFlag {
	flags := make([]FeatureFlag, 0, len(Defaults))
	for f := range Defaults {
		flags = append(flags, f)
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i] < flags[j] })
	return flags
}

// Manager answers whether a flag is on.
type Manager interface {
	IsEnabled(ctx context.Context, flag FeatureFlag) bool

	// SetEnabled overrides a flag for the lifetime of the manager
	SetEnabled(flag FeatureFlag, enabled bool)

	// GetAllFlags returns the state of every known flag
	GetAllFlags() map[FeatureFlag]bool
}

// EnvManager reads flags from the environment.
type EnvManager struct {
	mu        sync.RWMutex
	overrides map[FeatureFlag]bool
	prefix    string
	lookup    func(string) (string, bool)
}

// NewEnvManager creates an environment-backed manager. An empty prefix means "FEATURE_".
func NewEnvManager(prefix string) *EnvManager {
	if prefix == "" {
		prefix = "FEATURE_"
	}
	return &EnvManager{
		overrides: make(map[FeatureFlag]bool),
		prefix:    prefix,
		lookup:    os.LookupEnv,
	}
}

// IsEnabled resolves the flag. A set but unrecognised value counts as off.
func (m *EnvManager) IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	m.mu.RLock()
	enabled, ok := m.overrides[flag]
	m.mu.RUnlock()
	if ok {
		return enabled
	}

	value, ok := m.lookup(m.envKey(flag))
	if !ok || strings.TrimSpace(value) == "" {
		return Defaults[flag]
	}
	return parseBool(value)
}

// SetEnabled overrides the environment for flag.
func (m *EnvManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[flag] = enabled
}

// GetAllFlags returns the resolved state of every known flag.
func (m *EnvManager) GetAllFlags() map[FeatureFlag]bool {
	ctx := context.Background()
	flags := make(map[FeatureFlag]bool, len(Defaults))
	for _, f := range Known() {
		flags[f] = m.IsEnabled(ctx, f)
	}
	return flags
}

func (m *EnvManager) envKey(flag FeatureFlag) string {
	return m.prefix + strings.ToUpper(string(flag))
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "enabled", "on":
		return true
	default:
		return false
	}
}

// StaticManager holds fixed flag states; unknown flags are off.
type StaticManager struct {
	mu    sync.RWMutex
	flags map[FeatureFlag]bool
}

// NewStaticManager copies flags into a new manager.
func NewStaticManager(flags map[FeatureFlag]bool) *StaticManager {
	m := &StaticManager{flags: make(map[FeatureFlag]bool, len(flags))}
	for k, v := range flags {
		m.flags[k] = v
	}
	return m
}

func (m *StaticManager) IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags[flag]
}

func (m *StaticManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[flag] = enabled
}

func (m *StaticManager) GetAllFlags() map[FeatureFlag]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[FeatureFlag]bool, len(m.flags))
	for k, v := range m.flags {
		result[k] = v
	}
	return result
}

type contextKey struct{}

// WithManager stores manager in ctx.
func WithManager(ctx context.Context, manager Manager) context.Context {
	return context.WithValue(ctx, contextKey{}, manager)
}

// FromContext returns the manager in ctx, or one holding the defaults.
func FromContext(ctx context.Context) Manager {
	if manager, ok := ctx.Value(contextKey{}).(Manager); ok {
		return manager
	}
	return NewStaticManager(Defaults)
}

// IsEnabled checks flag against the manager carried by ctx.
func IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	return FromContext(ctx).IsEnabled(ctx, flag)
}
