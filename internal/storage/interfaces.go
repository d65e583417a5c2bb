package storage

import "errors"

var ErrKeyNotFound = errors.New("key not found")

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

// KeyValueStorage is durable local storage addressed by name.
type KeyValueStorage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
