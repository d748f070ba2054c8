package kvstore

// Adapted from https://github.com/philippgille/gokv/consul with string
// values, codec-backed SetAny/GetAny and prefix listing.

import (
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/consul/api"

	"github.com/fystack/lotofacil-generator/pkg/common/enum"
	"github.com/fystack/lotofacil-generator/pkg/infra"
)

// ConsulClient implement infra.KVStore
type ConsulClient struct {
	c     *api.KV
	ns    namespace
	codec infra.Codec
}

func (c ConsulClient) GetName() string {
	return string(enum.KVStoreTypeConsul)
}

func (c ConsulClient) get(k string) ([]byte, error) {
	key, err := c.ns.full(k)
	if err != nil {
		return nil, err
	}
	kvPair, _, err := c.c.Get(key, nil)
	if err != nil {
		return nil, err
	}
	if kvPair == nil {
		return nil, ErrKeyNotFound
	}
	return kvPair.Value, nil
}

func (c ConsulClient) put(k string, data []byte) error {
	key, err := c.ns.full(k)
	if err != nil {
		return err
	}
	_, err = c.c.Put(&api.KVPair{Key: key, Value: data}, nil)
	return err
}

func (c ConsulClient) Set(k string, v string) error {
	return c.put(k, []byte(v))
}

// Get retrieves the stored value for the given key.
func (c ConsulClient) Get(k string) (string, error) {
	data, err := c.get(k)
	return string(data), err
}

// SetAny stores v encoded with the client codec.
func (c ConsulClient) SetAny(k string, v any) error {
	if err := checkKeyAndValue(k, v); err != nil {
		return err
	}
	data, err := c.codec.Marshal(v)
	if err != nil {
		return err
	}
	return c.put(k, data)
}

// GetAny decodes the stored value into v. If no value is found it returns (false, nil).
func (c ConsulClient) GetAny(k string, v any) (bool, error) {
	if err := checkKeyAndValue(k, v); err != nil {
		return false, err
	}
	data, err := c.get(k)
	if err == ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, c.codec.Unmarshal(data, v)
}

func (c ConsulClient) List(prefix string) ([]*infra.KVPair, error) {
	if prefix == "" {
		return nil, ErrPrefixEmpty
	}
	full, err := c.ns.full(prefix)
	if err != nil {
		return nil, err
	}

	kvPairs, _, err := c.c.List(full, nil)
	if err != nil {
		return nil, err
	}

	result := make([]*infra.KVPair, len(kvPairs))
	for i, kvPair := range kvPairs {
		result[i] = &infra.KVPair{
			Key:   c.ns.relative(kvPair.Key),
			Value: kvPair.Value,
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

// Delete deletes the stored value for the given key.
// Deleting a non-existing key-value pair does NOT lead to an error.
func (c ConsulClient) Delete(k string) error {
	key, err := c.ns.full(k)
	if err != nil {
		return err
	}
	_, err = c.c.Delete(key, nil)
	return err
}

// Close has no effect for Consul.
func (c ConsulClient) Close() error {
	return nil
}

// Options are the options for the Consul client.
type Options struct {
	// URI scheme for the Consul server ("http" by default).
	Scheme string
	// Address of the Consul server, including port number ("127.0.0.1:8500" by default).
	Address string
	// Directory under which to store the key-value pairs.
	Folder string
	// Encoding format (infra.JSON by default).
	Codec infra.Codec

	Token    string
	HttpAuth *api.HttpBasicAuth
}

var DefaultConsulOptions = Options{
	Scheme:  "http",
	Address: "127.0.0.1:8500",
	Codec:   infra.JSON,
}

func NewConsulClient(options Options) (infra.KVStore, error) {
	if options.Scheme == "" {
		options.Scheme = DefaultConsulOptions.Scheme
	}
	if options.Address == "" {
		options.Address = DefaultConsulOptions.Address
	}
	if options.Codec == nil {
		options.Codec = DefaultConsulOptions.Codec
	}

	config := api.DefaultConfig()
	config.Scheme = options.Scheme
	config.Address = options.Address
	config.WaitTime = 10 * time.Second
	if options.Token != "" {
		config.Token = options.Token
	}
	if options.HttpAuth != nil && options.HttpAuth.Username != "" {
		config.HttpAuth = options.HttpAuth
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, err
	}

	// Ping the Consul server to verify connectivity
	if _, err = client.Status().Leader(); err != nil {
		return nil, fmt.Errorf("failed to connect to Consul: %w", err)
	}

	return ConsulClient{
		c:     client.KV(),
		ns:    namespace(options.Folder),
		codec: options.Codec,
	}, nil
}
