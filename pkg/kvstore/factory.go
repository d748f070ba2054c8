package kvstore

import (
	"fmt"

	"github.com/hashicorp/consul/api"

	"github.com/fystack/lotofacil-generator/pkg/common/config"
	"github.com/fystack/lotofacil-generator/pkg/common/enum"
	"github.com/fystack/lotofacil-generator/pkg/common/logger"
	"github.com/fystack/lotofacil-generator/pkg/infra"
)

// NewFromConfig opens the draw history backend. Both backends store JSON so a
// history can be moved between them with a List/SetAny copy.
func NewFromConfig(cfg config.KVSConfig) (infra.KVStore, error) {
	var (
		store infra.KVStore
		err   error
	)
	switch cfg.Type {
	case enum.KVStoreTypeBadger:
		store, err = NewBadgerStore(cfg.Badger.Directory, cfg.Badger.Prefix, infra.JSON)
	case enum.KVStoreTypeConsul:
		store, err = NewConsulClient(consulOptions(cfg.Consul))
	default:
		return nil, fmt.Errorf("unsupported kvstore type: %s", cfg.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s kvstore: %w", cfg.Type, err)
	}
	logger.Debug("Draw store opened", "backend", store.GetName())
	return store, nil
}

func consulOptions(cfg config.ConsulConfig) Options {
	opts := Options{
		Scheme:  cfg.Scheme,
		Address: cfg.Address,
		Folder:  cfg.Folder,
		Codec:   infra.JSON,
		Token:   cfg.Token,
	}
	// only send basic auth when configured
	if cfg.HttpAuth.Username != "" {
		opts.HttpAuth = &api.HttpBasicAuth{
			Username: cfg.HttpAuth.Username,
			Password: cfg.HttpAuth.Password,
		}
	}
	return opts
}
