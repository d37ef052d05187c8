package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

const (
	catalogFile = "catalog.yaml"
	modelsFile  = "models.yaml"
	lookupsFile = "lookups.yaml"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:default} patterns in a string.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		submatch := envVarPattern.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		varName := submatch[1]
		defaultVal := ""
		if len(submatch) >= 3 {
			defaultVal = submatch[2]
		}
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return defaultVal
	})
}

// LoadFile reads a YAML file, expands env vars, and unmarshals into dest.
func LoadFile(path string, dest interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	expanded := expandEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(expanded), dest); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// LoadCatalogConfig overlays configDir/catalog.yaml onto DefaultConfig.
// found is false when the file does not exist.
func LoadCatalogConfig(configDir string) (cfg *Config, found bool, err error) {
	cfg = DefaultConfig()
	if err := LoadFile(filepath.Join(configDir, catalogFile), cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, false, fmt.Errorf("load catalog config: %w", err)
		}
		return cfg, false, nil
	}
	return cfg, true, nil
}

// reloadDebounce collapses the burst of events one editor save produces.
const reloadDebounce = 250 * time.Millisecond

// Loader manages configuration loading and hot-reload via fsnotify.
type Loader struct {
	configDir string
	debounce  time.Duration
	mu        sync.RWMutex
	cfg       *Config
	models    *ModelsConfig
	lookups   *LookupsConfig
	watchers  []func()
	logger    *slog.Logger
}

func NewLoader(configDir string, logger *slog.Logger) *Loader {
	return &Loader{
		configDir: configDir,
		debounce:  reloadDebounce,
		logger:    logger,
	}
}

// Load reads catalog.yaml, models.yaml and lookups.yaml. The service config
// falls back to defaults when catalog.yaml is absent; the canonical mapping
// is required; lookups are optional.
func (l *Loader) Load() error {
	cfg, found, err := LoadCatalogConfig(l.configDir)
	if err != nil {
		return err
	}
	if !found {
		l.logger.Warn("catalog config not found, using defaults", "dir", l.configDir)
	}

	models := &ModelsConfig{}
	if err := LoadFile(filepath.Join(l.configDir, modelsFile), models); err != nil {
		return fmt.Errorf("load models config: %w", err)
	}
	if err := models.validate(); err != nil {
		return fmt.Errorf("load models config: %w", err)
	}

	lookups := &LookupsConfig{}
	if err := LoadFile(filepath.Join(l.configDir, lookupsFile), lookups); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load lookups config: %w", err)
		}
	}

	l.mu.Lock()
	l.cfg = cfg
	l.models = models
	l.lookups = lookups
	l.mu.Unlock()

	l.logger.Info("configuration loaded", "dir", l.configDir, "models", len(models.Models))
	return nil
}

func (l *Loader) Config() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cfg
}

func (l *Loader) Models() *ModelsConfig {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.models
}

func (l *Loader) Lookups() *LookupsConfig {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lookups
}

// OnReload registers a callback that fires after config is reloaded.
func (l *Loader) OnReload(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.watchers = append(l.watchers, fn)
}

func (l *Loader) reloadCallbacks() []func() {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]func(){}, l.watchers...)
}

// Watch starts watching the config directory. Changes are reloaded once the
// directory has been quiet for the debounce interval.
func (l *Loader) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(l.configDir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch config dir %s: %w", l.configDir, err)
	}

	go func() {
		defer watcher.Close()
		var pending <-chan time.Time
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					l.logger.Debug("config file changed", "file", event.Name)
					pending = time.After(l.debounce)
				}
			case <-pending:
				pending = nil
				l.logger.Info("config changed, reloading", "dir", l.configDir)
				if err := l.Load(); err != nil {
					l.logger.Error("failed to reload config", "error", err)
					continue
				}
				for _, fn := range l.reloadCallbacks() {
					fn()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				l.logger.Error("fsnotify error", "error", err)
			}
		}
	}()

	return nil
}
