package concurrency_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lightify/internal/concurrency"
)

func Test_Run_VisitsEveryAddressInOrder(t *testing.T) {

	visited := []uint64{}
	worker := concurrency.NewThrottledWorker(time.Millisecond, func(addr uint64) error {
		visited = append(visited, addr)
		return nil
	})

	worker.Run([]uint64{0xAA, 0xBB, 0xCC})

	assert.Equal(t, []uint64{0xAA, 0xBB, 0xCC}, visited)
}
