// SPDX-License-Identifier: MIT
// Copyright (c) 2025 go-fop1 contributors.

package cop1

// lowerLayerWorker is the second of the engine's two goroutines (spec §5):
// it serially calls the configured OutputFunc for each frame the engine
// worker hands it over toLowerLayer, then reports the outcome back as an
// E41-E46 stimulus. Running this on its own goroutine keeps a slow or
// blocking OutputFunc from stalling event classification and timer
// handling on the engine worker — grounded on the teacher stack's
// sendLoop(), which isolates blocking conn.Write calls from the state
// machine's run() loop the same way.
func (e *Engine) lowerLayerWorker() {
	defer e.wg.Done()
	e.logger.Debug("lower layer worker started")
	for {
		select {
		case <-e.ctx.Done():
			e.logger.Debug("lower layer worker stopped")
			return
		case f := <-e.toLowerLayer:
			out, _ := e.output.Load().(OutputFunc)
			accepted := out != nil && out(f)
			if err := e.LowerLayer(f, accepted); err != nil {
				e.logger.Debug("lower layer report dropped, %v", err)
			}
		}
	}
}
