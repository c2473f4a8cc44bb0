package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/shoepuzzle/game/engine"
	"github.com/wricardo/mcp-training/shoepuzzle/game/service"
	"github.com/wricardo/mcp-training/shoepuzzle/game/solver"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// DefaultConfigID is the config used when none is requested
const DefaultConfigID = "classic"

// Manager handles puzzle configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.PuzzleConfig
	configs       map[string]*engine.PuzzleConfig
	// shortest caches the optimal solution length per config ID
	shortest map[string]int
	mu       sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.PuzzleConfig),
		shortest:  make(map[string]int),
	}

	m.defaultConfig = m.loadDefaultConfig()
	return m, nil
}

// LoadConfig loads a configuration by ID (file name with or without .json)
func (m *Manager) LoadConfig(name string) (*engine.PuzzleConfig, error) {
	id := strings.TrimSuffix(name, ".json")
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}

	m.mu.RLock()
	config, exists := m.configs[id]
	m.mu.RUnlock()
	if exists {
		return config, nil
	}

	config, err := m.readConfig(id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another goroutine may have cached it meanwhile
	if cached, exists := m.configs[id]; exists {
		return cached, nil
	}
	m.configs[id] = config
	return config, nil
}

// readConfig reads and validates a config file without touching the cache
func (m *Manager) readConfig(id string) (*engine.PuzzleConfig, error) {
	data, err := os.ReadFile(filepath.Join(m.configDir, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, id)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config engine.PuzzleConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, id, err)
	}
	if err := engine.ValidatePuzzleConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, id, err)
	}
	return &config, nil
}

// ListConfigs returns information about all valid configurations, sorted by ID.
// Each entry carries the length of the shortest solution of its layout.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")

		config, err := m.LoadConfig(id)
		if err != nil {
			log.Printf("Warning: skipping config %s: %v", entry.Name(), err)
			continue
		}
		initial, err := config.InitialState()
		if err != nil {
			continue
		}

		configs = append(configs, &service.ConfigInfo{
			Filename:         entry.Name(),
			ConfigID:         id,
			Name:             config.Name,
			Description:      config.Description,
			Initial:          initial,
			ShortestSolution: m.shortestSolution(id, initial),
		})
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ConfigID < configs[j].ConfigID
	})
	return configs, nil
}

// shortestSolution returns the cached optimal move count for a config, or -1
func (m *Manager) shortestSolution(id string, initial engine.PuzzleState) int {
	m.mu.RLock()
	n, ok := m.shortest[id]
	m.mu.RUnlock()
	if ok {
		return n
	}

	n = -1
	res, err := solver.New().Search(context.Background(), initial)
	if err != nil {
		log.Printf("Warning: solving config %s: %v", id, err)
	} else if res.Found {
		n = res.Goal.Depth()
	}

	m.mu.Lock()
	m.shortest[id] = n
	m.mu.Unlock()
	return n
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.PuzzleConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by ID
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops all cached configurations and reloads the default from disk
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.configs = make(map[string]*engine.PuzzleConfig)
	m.shortest = make(map[string]int)
	m.mu.Unlock()

	config := m.loadDefaultConfig()

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}

// Count returns the number of cached configurations
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}

// loadDefaultConfig picks classic.json, then the first valid config on disk,
// and finally the built-in classic layout
func (m *Manager) loadDefaultConfig() *engine.PuzzleConfig {
	if config, err := m.LoadConfig(DefaultConfigID); err == nil {
		return config
	}

	entries, err := os.ReadDir(m.configDir)
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			if config, err := m.LoadConfig(entry.Name()); err == nil {
				return config
			}
		}
	}

	return engine.DefaultPuzzleConfig()
}

// SaveConfig validates a configuration and writes it to disk
func (m *Manager) SaveConfig(name string, config *engine.PuzzleConfig) error {
	if err := engine.ValidatePuzzleConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	id := strings.TrimSuffix(name, ".json")
	if id == "" || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: bad config name %q", ErrInvalidConfig, name)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.configDir, id+".json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[id] = config
	delete(m.shortest, id)
	m.mu.Unlock()

	return nil
}
