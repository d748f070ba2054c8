package infra

import (
	"encoding/json"
)

// KVStore is the key-value backend the draw store is written against.
// Implementations live in pkg/kvstore (Badger, Consul).
type KVStore interface {
	GetName() string
	Set(k string, v string) error
	Get(k string) (v string, err error)
	// This method if you want to set v as struct or map
	SetAny(k string, v any) error
	GetAny(k string, v any) (found bool, err error)

	// List returns the pairs under prefix, ordered by key.
	List(prefix string) ([]*KVPair, error)
	Delete(k string) error
	Close() error
}

type KVPair struct {
	Key   string
	Value []byte
}

// Codec encodes/decodes Go values to/from slices of bytes.
type Codec interface {
	// Marshal encodes a Go value to a slice of bytes.
	Marshal(v any) ([]byte, error)
	// Unmarshal decodes a slice of bytes into a Go value.
	Unmarshal(data []byte, v any) error
}

// Convenience variables
var (
	// JSON is a JSONcodec that encodes/decodes Go values to/from JSON.
	JSON = JSONcodec{}
)

// JSONcodec encodes/decodes Go values to/from JSON.
type JSONcodec struct{}

func (c JSONcodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c JSONcodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
