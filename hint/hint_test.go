package hint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHint_GetSet(t *testing.T) {
	h := New([]string{"198.41.0.4"})
	assert.Equal(t, []string{"198.41.0.4"}, h.Get())

	h.Set([]string{"192.5.6.30", "203.0.113.1"})
	assert.Equal(t, []string{"192.5.6.30", "203.0.113.1"}, h.Get())
}

func TestHint_GetReturnsACopy(t *testing.T) {
	h := New([]string{"198.41.0.4"})

	got := h.Get()
	got[0] = "mutated"

	assert.Equal(t, []string{"198.41.0.4"}, h.Get())
}

func TestHint_SaveAndRestore(t *testing.T) {
	h := New([]string{"198.41.0.4"})

	saved := h.Get()
	h.Set([]string{"192.5.6.30"})
	assert.Equal(t, []string{"192.5.6.30"}, h.Get())

	h.Set(saved)
	assert.Equal(t, []string{"198.41.0.4"}, h.Get())
}
