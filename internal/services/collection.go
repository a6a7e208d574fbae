package services

import (
	json "github.com/goccy/go-json"

	"vsd/internal/providers"
	"vsd/internal/storage"
)

// Collection is an ordered record sequence stored as one serialized blob
// under a single key. Every operation reads the whole blob, mutates it in
// memory and writes it back; concurrent writers to the same key overwrite
// each other at blob granularity (last writer wins). Record id uniqueness
// is the caller's responsibility.
type Collection[T any] struct {
	store  storage.KVStore
	key    string
	id     func(T) string
	logger providers.Logger
}

func NewCollection[T any](store storage.KVStore, key string, id func(T) string, logger providers.Logger) *Collection[T] {
	return &Collection[T]{
		store:  store,
		key:    key,
		id:     id,
		logger: logger,
	}
}

// List returns the full collection in insertion order. An absent or
// unparsable blob yields an empty sequence.
func (c *Collection[T]) List() []T {
	raw, ok := c.store.Get(c.key)
	if !ok {
		return []T{}
	}
	var records []T
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		c.logger.Warnf(providers.TypeApp, "Collection %s is malformed, treating as empty: %s", c.key, err)
		return []T{}
	}
	return records
}

func (c *Collection[T]) Create(record T) {
	records := c.List()
	records = append(records, record)
	c.save(records)
}

func (c *Collection[T]) Find(id string) (T, bool) {
	for _, r := range c.List() {
		if c.id(r) == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Update merges patch fields into the first record with a matching id.
// Fields present in the patch override, all others are retained.
func (c *Collection[T]) Update(id string, patch map[string]any) (T, bool) {
	var zero T
	records := c.List()
	for i, r := range records {
		if c.id(r) != id {
			continue
		}
		merged, err := mergeRecord(r, patch)
		if err != nil {
			c.logger.Errorf(providers.TypeApp, "Failed to merge update into %s/%s: %s", c.key, id, err)
			return zero, false
		}
		records[i] = merged
		c.save(records)
		return merged, true
	}
	return zero, false
}

// Delete removes the first record with a matching id and reports whether a
// removal occurred.
func (c *Collection[T]) Delete(id string) bool {
	records := c.List()
	for i, r := range records {
		if c.id(r) == id {
			records = append(records[:i], records[i+1:]...)
			c.save(records)
			return true
		}
	}
	return false
}

// Filter returns the subsequence matching pred, preserving insertion order.
func (c *Collection[T]) Filter(pred func(T) bool) []T {
	matched := []T{}
	for _, r := range c.List() {
		if pred(r) {
			matched = append(matched, r)
		}
	}
	return matched
}

func (c *Collection[T]) Len() int {
	return len(c.List())
}

func (c *Collection[T]) save(records []T) {
	data, err := json.Marshal(records)
	if err != nil {
		c.logger.Errorf(providers.TypeApp, "Failed to serialize collection %s: %s", c.key, err)
		return
	}
	c.store.Set(c.key, string(data))
}

// mergeRecord applies a partial-field patch through the record's JSON form.
func mergeRecord[T any](record T, patch map[string]any) (T, error) {
	var zero T
	base, err := json.Marshal(record)
	if err != nil {
		return zero, err
	}
	var fields map[string]any
	if err := json.Unmarshal(base, &fields); err != nil {
		return zero, err
	}
	for k, v := range patch {
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return zero, err
	}
	return out, nil
}
