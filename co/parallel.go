// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "runtime"

// Enqueue function to enqueue parallel works.
type Enqueue func(work func())

// Parallel runs a batch of work over as many CPUs as available. cb
// receives an Enqueue and returns after queuing everything; Parallel
// returns once all queued work finished.
func Parallel(cb func(Enqueue)) {
	var goes Goes
	defer goes.Wait()

	ch := make(chan func(), runtime.NumCPU()*2)
	defer close(ch)

	for i := 0; i < runtime.NumCPU(); i++ {
		goes.Go(func() {
			for work := range ch {
				work()
			}
		})
	}
	cb(func(work func()) { ch <- work })
}
