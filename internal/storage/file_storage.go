package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
	"jobdash/internal/providers"
	"jobdash/internal/structures"
)

// FileStorage keeps every key in one compressed JSON document on disk.
// Each write rewrites the whole document through a temp file and rename.
type FileStorage struct {
	mu         sync.Mutex
	path       string
	compressor CompressorInterface
	logger     providers.Logger
}

func NewFileStorage(conf *structures.Config, compressor CompressorInterface, logger providers.Logger) (KeyValueStorage, error) {
	if err := os.MkdirAll(filepath.Dir(conf.Session.Path), 0700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStorage{
		path:       conf.Session.Path,
		compressor: compressor,
		logger:     logger,
	}, nil
}

func (f *FileStorage) Get(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return nil, err
	}
	val, ok := doc[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return val, nil
}

func (f *FileStorage) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		f.logger.Warnf(providers.TypeSession, "Discarding unreadable storage %s: %s", f.path, err)
		doc = make(map[string]json.RawMessage)
	}
	doc[key] = value
	return f.save(doc)
}

func (f *FileStorage) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return f.save(make(map[string]json.RawMessage))
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return f.save(doc)
}

func (f *FileStorage) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]json.RawMessage), nil
		}
		return nil, err
	}

	raw, err := f.compressor.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", f.path, err)
	}

	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return doc, nil
}

func (f *FileStorage) save(doc map[string]json.RawMessage) error {
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}
