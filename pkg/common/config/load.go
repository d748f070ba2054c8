package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/imdario/mergo"

	"github.com/fystack/lotofacil-generator/pkg/common/constant"
	"github.com/fystack/lotofacil-generator/pkg/common/enum"
)

var validate = validator.New()

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// apply defaults
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	// validate
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("struct validation failed: %w", err)
	}
	if err := validate.Struct(cfg.Generator.Defaults); err != nil {
		return nil, fmt.Errorf("generator defaults validation failed: %w", err)
	}
	for name, preset := range cfg.Generator.Presets {
		if err := validate.Struct(preset); err != nil {
			return nil, fmt.Errorf("preset %s validation failed: %w", name, err)
		}
	}
	if cfg.Services.Cache.Type == enum.CacheTypeRedis && cfg.Services.Redis.URL == "" {
		return nil, fmt.Errorf("redis cache requires services.redis.url")
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	if err := mergo.Merge(&c.Generator.Defaults, DefaultPreset()); err != nil {
		return err
	}
	for name, preset := range c.Generator.Presets {
		if err := mergo.Merge(&preset, c.Generator.Defaults); err != nil {
			return err
		}
		c.Generator.Presets[name] = preset
	}

	if c.Services.Cache.Type == "" {
		c.Services.Cache.Type = enum.CacheTypeMemory
	}
	if c.Services.Nats != nil && c.Services.Nats.SubjectPrefix == "" {
		c.Services.Nats.SubjectPrefix = constant.DefaultSubject
	}
	if c.Services.Nats != nil && c.Services.Nats.Stream == "" {
		c.Services.Nats.Stream = constant.DefaultStream
	}
	return nil
}
