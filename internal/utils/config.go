package utils

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Config struct holds the list driver configuration
type Config struct {
	Quantity int    `yaml:"quantity"`
	DataType string `yaml:"data_type"`
	MaxSize  *int   `yaml:"max_size"` // 0 means unbounded, omitted means the default
	Workers  int    `yaml:"workers"`
	LogFile  string `yaml:"log_file"`
	Debug    bool   `yaml:"debug"`
}

const defaultMaxSize = 10000

// DataTypes are the labels accepted for data_type.
var DataTypes = []string{"str", "int", "float", "char"}

var (
	configInstance *Config   // Singleton configInstance
	configOnce     sync.Once // Ensures thread-safe initialization
	configErr      error
)

// LoadConfig initializes the singleton configInstance
func LoadConfig(filename string) (*Config, error) {
	configOnce.Do(func() {
		configInstance, configErr = loadConfigFromFile(filename)
	})
	return configInstance, configErr
}

// loadConfigFromFile reads and parses the config file
func loadConfigFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return getDefaultConfig(), nil
		}
		return nil, err
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	applyDefaults(config)
	return config, nil
}

// Capacity returns the configured list bound, 0 when unbounded.
func (c *Config) Capacity() int {
	if c.MaxSize == nil {
		return 0
	}
	return *c.MaxSize
}

// SetCapacity sets max_size; 0 makes the list unbounded.
func (c *Config) SetCapacity(n int) {
	c.MaxSize = &n
}

// getDefaultConfig returns default config values
func getDefaultConfig() *Config {
	return &Config{
		Quantity: 10000,
		DataType: "str",
		MaxSize:  intPtr(defaultMaxSize),
		Workers:  2,
	}
}

// applyDefaults ensures missing values get defaults
func applyDefaults(config *Config) {
	if config.Quantity == 0 {
		config.Quantity = 10000
	}
	if config.DataType == "" {
		config.DataType = "str"
	}
	if config.MaxSize == nil {
		config.MaxSize = intPtr(defaultMaxSize)
	}
	if config.Workers == 0 {
		config.Workers = 2
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.Quantity < 0 {
		result = multierror.Append(result, fmt.Errorf("quantity must not be negative, got %d", c.Quantity))
	}
	if !validDataType(c.DataType) {
		result = multierror.Append(result, fmt.Errorf("invalid data_type %q, must be one of %v", c.DataType, DataTypes))
	}
	if c.Capacity() < 0 {
		result = multierror.Append(result, fmt.Errorf("max_size must not be negative, got %d", c.Capacity()))
	}
	if c.Workers < 1 {
		result = multierror.Append(result, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	return result.ErrorOrNil()
}

func validDataType(dataType string) bool {
	for _, t := range DataTypes {
		if t == dataType {
			return true
		}
	}
	return false
}

func intPtr(n int) *int {
	return &n
}
