package disposer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_DisposeOrderAndOnce(t *testing.T) {
	var m Manager
	var calls []int
	m.Add(func() { calls = append(calls, 1) })
	m.Add(nil)
	m.Add(func() { calls = append(calls, 2) })

	assert.False(t, m.Disposed())
	m.Dispose()
	m.Dispose()
	assert.Equal(t, []int{2, 1}, calls)
	assert.True(t, m.Disposed())

	m.Add(func() { calls = append(calls, 3) })
	assert.Equal(t, []int{2, 1, 3}, calls, "late add runs immediately")
}
