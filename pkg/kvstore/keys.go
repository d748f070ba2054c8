package kvstore

import (
	"errors"
	"strings"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrKeyEmpty    = errors.New("key is empty")
	ErrNilValue    = errors.New("the passed value is nil, which is not allowed")
	ErrPrefixEmpty = errors.New("prefix is empty")
)

// namespace scopes every key under an optional folder, e.g. "lotofacil/draws/000001".
type namespace string

func (n namespace) full(k string) (string, error) {
	if k == "" {
		return "", ErrKeyEmpty
	}
	if n == "" {
		return k, nil
	}
	return string(n) + "/" + k, nil
}

// relative strips the namespace so callers see the keys they wrote.
func (n namespace) relative(k string) string {
	if n == "" {
		return k
	}
	return strings.TrimPrefix(k, string(n)+"/")
}

func checkKeyAndValue(k string, v any) error {
	if k == "" {
		return ErrKeyEmpty
	}
	if v == nil {
		return ErrNilValue
	}
	return nil
}
