package storage

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetAndGet(t *testing.T) {
	s := NewMemoryStore()

	s.Set("device_id", "abc-123")
	val, ok := s.Get("device_id")
	assert.True(t, ok)
	assert.Equal(t, "abc-123", val)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()

	val, ok := s.Get("nope")
	assert.False(t, ok)
	assert.Empty(t, val)
}

func TestMemoryStore_Overwrite(t *testing.T) {
	s := NewMemoryStore()

	s.Set("k", "v1")
	s.Set("k", "v2")

	val, _ := s.Get("k")
	assert.Equal(t, "v2", val)
}

func TestMemoryStore_Remove(t *testing.T) {
	s := NewMemoryStore()

	s.Set("k", "v")
	s.Remove("k")

	_, ok := s.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_RemoveMissingIsNoop(t *testing.T) {
	s := NewMemoryStore()
	s.Remove("never-set")
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_SetIfAbsent(t *testing.T) {
	s := NewMemoryStore()

	assert.True(t, s.SetIfAbsent("admin_user_id", "uid_1"))
	assert.False(t, s.SetIfAbsent("admin_user_id", "uid_2"))

	val, _ := s.Get("admin_user_id")
	assert.Equal(t, "uid_1", val)
}

func TestMemoryStore_SetIfAbsentConcurrent(t *testing.T) {
	s := NewMemoryStore()

	const writers = 50
	var wg sync.WaitGroup
	wins := make(chan string, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			candidate := "uid_" + strconv.Itoa(id)
			if s.SetIfAbsent("admin_user_id", candidate) {
				wins <- candidate
			}
		}(i)
	}
	wg.Wait()
	close(wins)

	var winners []string
	for w := range wins {
		winners = append(winners, w)
	}
	require.Len(t, winners, 1, "exactly one writer must win the slot")

	val, _ := s.Get("admin_user_id")
	assert.Equal(t, winners[0], val)
}

func TestMemoryStore_KeysAndLen(t *testing.T) {
	s := NewMemoryStore()

	s.Set("a", "1")
	s.Set("b", "2")
	s.Set("c", "3")

	assert.Equal(t, 3, s.Len())
	assert.ElementsMatch(t, []string{"a", "b", "c"}, s.Keys())
}

func TestMemoryStore_SnapshotIsCopy(t *testing.T) {
	s := NewMemoryStore()
	s.Set("k", "v")

	snap := s.Snapshot()
	snap["k"] = "mutated"
	snap["extra"] = "x"

	val, _ := s.Get("k")
	assert.Equal(t, "v", val)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_Replace(t *testing.T) {
	s := NewMemoryStore()
	s.Set("old", "v")

	s.Replace(map[string]string{"new": "w"})

	_, ok := s.Get("old")
	assert.False(t, ok)
	val, ok := s.Get("new")
	assert.True(t, ok)
	assert.Equal(t, "w", val)
}

func TestMemoryStore_ReplaceNil(t *testing.T) {
	s := NewMemoryStore()
	s.Set("k", "v")

	s.Replace(nil)
	assert.Equal(t, 0, s.Len())

	// Store stays usable after a nil replace.
	s.Set("k2", "v2")
	val, ok := s.Get("k2")
	assert.True(t, ok)
	assert.Equal(t, "v2", val)
}

func TestMemoryStore_ConcurrentReadWrite(t *testing.T) {
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			s.Set("k"+strconv.Itoa(id), strconv.Itoa(id))
		}(i)
		go func(id int) {
			defer wg.Done()
			s.Get("k" + strconv.Itoa(id))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, s.Len())
}
