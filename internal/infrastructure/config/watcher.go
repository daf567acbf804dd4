package config

import (
	"fmt"
	"reflect"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/feedwall/internal/logging"
)

// Change describes a reload that altered at least one config section.
type Change struct {
	Config *Config
	// Sections holds the top-level keys that differ, e.g. "sites" or "window".
	Sections []string
}

// ChangedSections lists the top-level sections that differ between prev and
// next, in declaration order.
func ChangedSections(prev, next *Config) []string {
	if prev == nil || next == nil {
		return nil
	}
	type section struct {
		key  string
		a, b any
	}
	var changed []string
	for _, s := range []section{
		{"sites", prev.Sites, next.Sites},
		{"layout", prev.Layout, next.Layout},
		{"viewport", prev.Viewport, next.Viewport},
		{"user_agents", prev.UserAgents, next.UserAgents},
		{"window", prev.Window, next.Window},
		{"appearance", prev.Appearance, next.Appearance},
		{"logging", prev.Logging, next.Logging},
		{"database", prev.Database, next.Database},
	} {
		if !reflect.DeepEqual(s.a, s.b) {
			changed = append(changed, s.key)
		}
	}
	return changed
}

// Watch re-reads the config file whenever it changes on disk. A valid edit
// that differs from the loaded config is published to OnConfigChange
// listeners; an invalid one is logged and ignored. Files written by Save
// match memory already and publish nothing.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}
	m.viper.OnConfigChange(m.handleFileEvent)
	m.viper.WatchConfig()
	m.watching = true
	return nil
}

func (m *Manager) handleFileEvent(e fsnotify.Event) {
	log := logging.NewFromEnv().With().Str("component", "config").Logger()
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		return
	}

	change, err := m.reload()
	if err != nil {
		log.Warn().Err(err).Str("file", e.Name).Msg("ignoring invalid config edit")
		return
	}
	if len(change.Sections) == 0 {
		log.Trace().Str("file", e.Name).Msg("config file rewritten without changes")
		return
	}
	log.Debug().Strs("sections", change.Sections).Msg("config reloaded")

	m.mu.RLock()
	listeners := append([]func(Change){}, m.callbacks...)
	m.mu.RUnlock()
	for _, fn := range listeners {
		fn(change)
	}
}

// reload swaps in the file's current contents and reports what changed.
func (m *Manager) reload() (Change, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		return Change{}, err
	}
	next, err := m.unmarshalConfig()
	if err != nil {
		return Change{}, err
	}
	if err := finalizeConfig(next); err != nil {
		return Change{}, err
	}
	sections := ChangedSections(m.config, next)
	m.config = next
	return Change{Config: next.clone(), Sections: sections}, nil
}

// OnConfigChange registers fn for reloads that change the config.
func (m *Manager) OnConfigChange(fn func(Change)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// Watch starts watching the global configuration file.
func Watch() error {
	if globalManager == nil {
		return fmt.Errorf("configuration not initialized")
	}
	return globalManager.Watch()
}

// OnConfigChange registers fn on the global manager.
func OnConfigChange(fn func(Change)) {
	if globalManager != nil {
		globalManager.OnConfigChange(fn)
	}
}
