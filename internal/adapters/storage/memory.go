package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"boothly/internal/domain"
)

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryStore is an in-process ObjectStore for development and tests. It also
// serves stored objects over HTTP at <prefix>/<bucket>/<path>.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	baseURL string
}

// NewMemoryStore returns an empty MemoryStore whose public URLs start with publicBaseURL.
func NewMemoryStore(publicBaseURL string) *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]memoryObject),
		baseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

func (m *MemoryStore) Put(_ context.Context, bucket, path string, upload *domain.Upload, overwrite bool) (*domain.StoredObject, error) {
	if upload == nil || upload.Body == nil {
		return nil, errors.New("upload body is required")
	}
	data, err := io.ReadAll(upload.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	key := bucket + "/" + path
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.objects[key]; exists && !overwrite {
		return nil, fmt.Errorf("%s: %w", key, ErrObjectExists)
	}
	m.objects[key] = memoryObject{data: data, contentType: upload.ContentType}
	return &domain.StoredObject{Bucket: bucket, Path: path, URL: m.PublicURL(bucket, path)}, nil
}

func (m *MemoryStore) PublicURL(bucket, path string) string {
	return publicURL(m.baseURL, bucket, path)
}

// Get returns the stored bytes for bucket/path.
func (m *MemoryStore) Get(bucket, path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[bucket+"/"+path]
	return obj.data, ok
}

// ServeHTTP serves GET requests for {bucket}/{path...} relative to the mount point.
func (m *MemoryStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.PathValue("key"), "/")
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	if obj.contentType != "" {
		w.Header().Set("Content-Type", obj.contentType)
	}
	_, _ = w.Write(obj.data)
}
