// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dengjinhmm/v-systems/co"
)

func TestParallel(t *testing.T) {
	var n int64
	co.Parallel(func(enqueue co.Enqueue) {
		for i := 0; i < 100; i++ {
			enqueue(func() {
				atomic.AddInt64(&n, 1)
			})
		}
	})
	assert.Equal(t, int64(100), n)
}

func TestGoesWait(t *testing.T) {
	var g co.Goes
	done := false
	g.Go(func() { done = true })
	g.Wait()
	assert.True(t, done)
}
