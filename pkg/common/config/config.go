package config

import (
	"fmt"
	"time"

	"github.com/fystack/lotofacil-generator/pkg/common/enum"
)

type Config struct {
	Environment string          `yaml:"env"       validate:"required,oneof=production development"`
	Log         LogConfig       `yaml:"log"`
	Generator   GeneratorConfig `yaml:"generator"`
	Services    Services        `yaml:"services"  validate:"required"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

type GeneratorConfig struct {
	Defaults Preset            `yaml:"defaults"`
	Presets  map[string]Preset `yaml:"presets"`
}

// Preset is one named set of generation parameters. Zero fields inherit from
// generator.defaults, which in turn inherits from DefaultPreset.
type Preset struct {
	Count             int           `yaml:"count"                validate:"min=0,max=1000"`
	Window            int           `yaml:"window"               validate:"min=1"`
	MaxColumnsPerDraw int           `yaml:"max_columns_per_draw" validate:"min=1,max=5"`
	MaxAttempts       int           `yaml:"max_attempts"         validate:"min=1"`
	PoolSize          int           `yaml:"pool_size"            validate:"min=5"`
	TopN              int           `yaml:"top_n"                validate:"min=1,max=10"`
	CacheTTL          time.Duration `yaml:"cache_ttl"            validate:"min=0"`
}

// DefaultPreset mirrors the sampler defaults: 2 columns per draw, 1000
// attempts per game, a pool of 30 columns and the top 3 signature buckets.
func DefaultPreset() Preset {
	return Preset{
		Count:             10,
		Window:            100,
		MaxColumnsPerDraw: 2,
		MaxAttempts:       1000,
		PoolSize:          30,
		TopN:              3,
		CacheTTL:          time.Hour,
	}
}

// Preset resolves a preset by name; "" and "default" select generator.defaults.
func (c *Config) Preset(name string) (Preset, error) {
	if name == "" || name == "default" {
		return c.Generator.Defaults, nil
	}
	p, ok := c.Generator.Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q", name)
	}
	return p, nil
}

type Services struct {
	KVS      KVSConfig       `yaml:"kvstore"`
	Cache    CacheConfig     `yaml:"cache"`
	Nats     *NatsConfig     `yaml:"nats,omitempty"`
	Redis    RedisConfig     `yaml:"redis"`
	Database *DatabaseConfig `yaml:"database,omitempty"`
}

type NatsConfig struct {
	URL           string        `yaml:"url"`
	SubjectPrefix string        `yaml:"subject_prefix"`
	Stream        string        `yaml:"stream"`
	Username      string        `yaml:"username"`
	Password      string        `yaml:"password"`
	TLS           NatsTLSConfig `yaml:"tls"`
}

type NatsTLSConfig struct {
	ClientCert string `yaml:"client_cert"`
	ClientKey  string `yaml:"client_key"`
	CACert     string `yaml:"ca_cert"`
}

type DatabaseConfig struct {
	URL string `yaml:"url" validate:"required"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CacheConfig struct {
	Type      enum.CacheType `yaml:"type"       validate:"omitempty,oneof=memory redis none"`
	KeyPrefix string         `yaml:"key_prefix"`
}

type KVSConfig struct {
	Type   enum.KVStoreType `yaml:"type"   validate:"required,oneof=badger consul"`
	Consul ConsulConfig     `yaml:"consul"`
	Badger BadgerConfig     `yaml:"badger"`
}

type ConsulConfig struct {
	Scheme   string         `yaml:"scheme"`
	Address  string         `yaml:"address"`
	Folder   string         `yaml:"folder"`
	Token    string         `yaml:"token"`
	HttpAuth HttpAuthConfig `yaml:"http_auth"`
}

type HttpAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type BadgerConfig struct {
	Directory string `yaml:"directory"`
	Prefix    string `yaml:"prefix"`
}
