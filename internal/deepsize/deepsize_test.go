package deepsize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOf(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		assert.Equal(t, int64(0), Of(nil))
	})

	t.Run("StringCountsBackingBytes", func(t *testing.T) {
		short := Of("ab")
		long := Of("abcdefghijklmnopqrstuvwxyz")
		assert.Greater(t, long, short)
		assert.Equal(t, int64(24), long-short)
	})

	t.Run("SliceCountsCapacity", func(t *testing.T) {
		small := Of(make([]int64, 10))
		big := Of(make([]int64, 10, 1000))
		assert.Equal(t, int64(990*8), big-small)
	})

	t.Run("MapGrowsWithEntries", func(t *testing.T) {
		empty := map[int]string{}
		full := map[int]string{}
		for i := range 1000 {
			full[i] = "some label"
		}
		assert.Greater(t, Of(full), Of(empty))
	})

	t.Run("PointerCycleTerminates", func(t *testing.T) {
		type ring struct {
			next *ring
			data [64]byte
		}
		a := &ring{}
		b := &ring{next: a}
		a.next = b

		size := Of(a)
		assert.Greater(t, size, int64(128))
		assert.Less(t, size, int64(1024))
	})

	t.Run("SharedBackingCountedOnce", func(t *testing.T) {
		backing := make([]byte, 4096)
		type holder struct {
			a, b []byte
		}
		h := holder{a: backing, b: backing}
		size := Of(h)
		assert.Less(t, size, int64(2*4096))
	})
}
