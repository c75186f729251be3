package lockdemo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"gitlab.com/slon/lockdemo/geometry"
)

// Config описывает параметры всех демонстраций.
type Config struct {
	Counter   CounterConfig   `yaml:"counter"`
	ReadWrite ReadWriteConfig `yaml:"readwrite"`
	Shapes    []geometry.Spec `yaml:"shapes"`
}

// CounterConfig configures the exclusive counter demo.
// One spawned worker and the caller each perform Increments increments.
type CounterConfig struct {
	Initial    int `yaml:"initial"`
	Increments int `yaml:"increments"`
}

// ReadWriteConfig configures the reader/writer demo.
type ReadWriteConfig struct {
	Readers int `yaml:"readers"`
	Reads   int `yaml:"reads"`
	Writes  int `yaml:"writes"`
	// Exclusive runs the same workload over a plain mutex.
	Exclusive bool `yaml:"exclusive"`
}

// DefaultConfig returns the parameters of the classic exercise.
func DefaultConfig() Config {
	return Config{
		Counter: CounterConfig{
			Initial:    0,
			Increments: 50,
		},
		ReadWrite: ReadWriteConfig{
			Readers: 10,
			Reads:   20,
			Writes:  20,
		},
	}
}

// LoadConfig reads a YAML config on top of DefaultConfig.
// An empty path or an empty file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return &config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Если файл пустой, возвращаем конфигурацию по умолчанию
	if len(data) == 0 {
		return &config, nil
	}

	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects negative counts.
func (c *Config) Validate() error {
	if err := c.Counter.Validate(); err != nil {
		return err
	}
	return c.ReadWrite.Validate()
}

func (c CounterConfig) Validate() error {
	if c.Increments < 0 {
		return fmt.Errorf("counter.increments must be non-negative, got %d", c.Increments)
	}
	return nil
}

func (c ReadWriteConfig) Validate() error {
	for _, f := range []struct {
		name  string
		value int
	}{
		{"readwrite.readers", c.Readers},
		{"readwrite.reads", c.Reads},
		{"readwrite.writes", c.Writes},
	} {
		if f.value < 0 {
			return fmt.Errorf("%s must be non-negative, got %d", f.name, f.value)
		}
	}
	return nil
}
