package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceGenerator(t *testing.T) {
	gen := NewSequenceGenerator("")
	assert.Equal(t, "run-0001", gen.Generate())
	assert.Equal(t, "run-0002", gen.Generate())

	gen.Reset()
	assert.Equal(t, "run-0001", gen.Generate())

	assert.Equal(t, "check-0001", NewSequenceGenerator("check").Generate())
}

func TestSequenceGeneratorConcurrent(t *testing.T) {
	gen := NewSequenceGenerator("c")
	seen := make(map[string]bool)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := gen.Generate()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 50)
}
