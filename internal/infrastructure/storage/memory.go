package storage

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	exportapp "github.com/sepur/finance/internal/application/export"
)

// Ensure MemoryObjectStorage implements ObjectStorage
var _ exportapp.ObjectStorage = (*MemoryObjectStorage)(nil)

// MemoryObject is a stored object held by MemoryObjectStorage.
type MemoryObject struct {
	Data        []byte
	ContentType string
}

// MemoryObjectStorage keeps objects in process memory.
// It backs local development and tests where no S3 endpoint is reachable.
type MemoryObjectStorage struct {
	mu      sync.RWMutex
	objects map[string]MemoryObject
	baseURL string
}

// NewMemoryObjectStorage creates an empty store whose public URLs start with baseURL.
func NewMemoryObjectStorage(baseURL string) *MemoryObjectStorage {
	if baseURL == "" {
		baseURL = "memory://documents"
	}
	return &MemoryObjectStorage{
		objects: make(map[string]MemoryObject),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload stores a copy of data under key, replacing any existing object.
func (m *MemoryObjectStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	m.objects[key] = MemoryObject{Data: buf, ContentType: contentType}
	m.mu.Unlock()
	return nil
}

// PublicURL returns baseURL/key
func (m *MemoryObjectStorage) PublicURL(key string) string {
	return m.baseURL + "/" + escapeKey(key)
}

// Get returns the object stored under key.
func (m *MemoryObjectStorage) Get(key string) (MemoryObject, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj, ok
}

// Keys lists stored keys in lexical order.
func (m *MemoryObjectStorage) Keys() []string {
	m.mu.RLock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	m.mu.RUnlock()
	sort.Strings(keys)
	return keys
}
