// FILE: lixenwraith/pebble/cmd/reconfig/main.go
package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/pebble"
)

// Simulate rapid reconfiguration while producers keep logging
func main() {
	var count atomic.Int64

	logger := pebble.NewLogger()
	if err := logger.ApplyOverride("level=info", "console_color=false"); err != nil {
		fmt.Printf("Initial config error: %v\n", err)
		return
	}
	if err := logger.Start(); err != nil {
		fmt.Printf("Start error: %v\n", err)
		return
	}

	// Log something constantly
	done := make(chan struct{})
	go func() {
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			logger.Info("Test log", i)
			count.Add(1)
			time.Sleep(time.Millisecond)
		}
	}()

	// Trigger multiple reconfigurations rapidly
	for i := 0; i < 10; i++ {
		// Different buffer sizes rebuild the queue and restart the dispatcher
		bufSize := fmt.Sprintf("buffer_size=%d", 100*(i+1))
		workers := fmt.Sprintf("workers=%d", i%3)
		if err := logger.ApplyOverride(bufSize, workers); err != nil {
			fmt.Printf("Reconfig error: %v\n", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(500 * time.Millisecond)
	close(done)

	if err := logger.Shutdown(time.Second); err != nil {
		fmt.Printf("Shutdown error: %v\n", err)
	}

	stats := logger.Stats()
	fmt.Printf("Total logs attempted: %d, processed: %d, dropped: %d\n",
		count.Load(), stats.Processed, stats.Dropped)
}
