package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForVisitsEveryIndexOnce(t *testing.T) {
	for name, cfg := range map[string]Config{
		"sequential": Sequential(),
		"parallel":   {Enabled: true, NumWorkers: 4, MinChunkSize: 8},
	} {
		t.Run(name, func(t *testing.T) {
			const n = 1000
			var hits [n]atomic.Int32
			For(n, func(i int) { hits[i].Add(1) }, cfg)
			for i := range hits {
				assert.Equal(t, int32(1), hits[i].Load(), "index %d", i)
			}
		})
	}
}

func TestChunksEmpty(t *testing.T) {
	called := false
	Chunks(0, func(_, _ int) { called = true }, DefaultConfig())
	assert.False(t, called)
}
