package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SPI struct {
	Dev     string `yaml:"dev"`      // e.g. /dev/spidev0.0; empty picks the first port
	SpeedHz int    `yaml:"speed_hz"` // e.g. 4000000
}

type Serial struct {
	Dev  string `yaml:"dev"` // e.g. /dev/ttyACM0; empty disables the serial source
	Baud int    `yaml:"baud"`
}

type Defaults struct {
	Brightness int    `yaml:"brightness"` // 0..15
	SpeedMS    int    `yaml:"speed_ms"`
	Text       string `yaml:"text"`
}

type Config struct {
	Driver  string `yaml:"driver"` // "spi" | "sim"
	Modules int    `yaml:"modules"`
	Addr    string `yaml:"addr"` // HTTP listen address, empty disables

	SPI      SPI      `yaml:"spi,omitempty"`
	Serial   Serial   `yaml:"serial,omitempty"`
	Defaults Defaults `yaml:"defaults,omitempty"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
