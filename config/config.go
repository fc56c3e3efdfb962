package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// LoadConfig reads the configuration from a JSON file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}

// SaveConfig writes a configuration to a JSON file
func SaveConfig(filename string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateDefaultConfig creates a template configuration file
func CreateDefaultConfig(filename string) error {
	return SaveConfig(filename, DefaultConfig())
}

// DefaultConfig returns the stock settings the engine ships with
func DefaultConfig() *Config {
	return &Config{
		Stock: StockConfig{
			MinBoxes:            2,
			DaysToStock:         2,
			AveragingDays:       3,
			IncludeDisplay:      false,
			ProtectedFunds:      0,
			AutoRestockDayStart: false,
		},
		Engine: EngineConfig{
			SaveFile:             "restock-records.json",
			OrderCooldownSeconds: 1,
			TickIntervalMillis:   16,
			LogFile:              "restock-engine.log",
			LogLevel:             "info",
			LogTailSize:          500,
		},
		Bridge: BridgeConfig{
			URL:                   "ws://127.0.0.1:7643/bridge",
			RequestTimeoutSeconds: 5,
		},
	}
}

// OrderCooldown returns the pause applied after a capacity-triggered flush
func (c *Config) OrderCooldown() time.Duration {
	return time.Duration(c.Engine.OrderCooldownSeconds) * time.Second
}

// TickInterval returns the pause applied between single cart additions
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Engine.TickIntervalMillis) * time.Millisecond
}

// RequestTimeout returns how long a bridge request waits for its reply
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Bridge.RequestTimeoutSeconds) * time.Second
}

// applyDefaults fills zero values that would break the stock formulas
func applyDefaults(c *Config) {
	def := DefaultConfig()
	if c.Stock.AveragingDays < 1 {
		c.Stock.AveragingDays = def.Stock.AveragingDays
	}
	if c.Stock.DaysToStock < 1 {
		c.Stock.DaysToStock = def.Stock.DaysToStock
	}
	if c.Engine.SaveFile == "" {
		c.Engine.SaveFile = def.Engine.SaveFile
	}
	if c.Engine.OrderCooldownSeconds < 1 {
		c.Engine.OrderCooldownSeconds = def.Engine.OrderCooldownSeconds
	}
	if c.Engine.TickIntervalMillis < 1 {
		c.Engine.TickIntervalMillis = def.Engine.TickIntervalMillis
	}
	if c.Engine.LogTailSize < 1 {
		c.Engine.LogTailSize = def.Engine.LogTailSize
	}
	if c.Bridge.RequestTimeoutSeconds < 1 {
		c.Bridge.RequestTimeoutSeconds = def.Bridge.RequestTimeoutSeconds
	}
}
