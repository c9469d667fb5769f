package recent

import "maps"

// MemoryBackend keeps keys in a map. Setting FailPut makes every Put fail.
type MemoryBackend struct {
	data    map[string][]byte
	FailPut error
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (b *MemoryBackend) Get(key string) ([]byte, error) {
	v, ok := b.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (b *MemoryBackend) Put(key string, value []byte) error {
	if b.FailPut != nil {
		return b.FailPut
	}
	b.data[key] = append([]byte(nil), value...)
	return nil
}

func (b *MemoryBackend) Delete(key string) error {
	if _, ok := b.data[key]; !ok {
		return ErrNotFound
	}
	delete(b.data, key)
	return nil
}

func (b *MemoryBackend) Close() error { return nil }

// Snapshot returns a copy of the stored data, for inspection in tests.
func (b *MemoryBackend) Snapshot() map[string][]byte {
	return maps.Clone(b.data)
}
