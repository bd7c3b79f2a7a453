// FILE: lixenwraith/pebble/cmd/stress/main.go
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/pebble"
)

const (
	totalBursts    = 100
	logsPerBurst   = 500
	maxMessageSize = 2000
	numProducers   = 64
)

const logsDir = "./stress_logs"

var levels = []int64{
	pebble.LevelDebug,
	pebble.LevelInfo,
	pebble.LevelWarn,
	pebble.LevelError,
}

func generateRandomMessage(r *rand.Rand, size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[r.Intn(len(chars))])
	}
	return sb.String()
}

// logBurst simulates a burst of logging activity
func logBurst(logger *pebble.Logger, r *rand.Rand, burstID int) {
	for i := 0; i < logsPerBurst; i++ {
		level := levels[r.Intn(len(levels))]
		msg := generateRandomMessage(r, r.Intn(maxMessageSize)+10)
		logger.Logf(level, "bst=%d seq=%d %s", burstID, i, msg)
	}
}

func main() {
	fmt.Println("--- Logger Stress Test ---")

	_ = os.RemoveAll(logsDir) // Clean previous run's logs before starting

	logger, err := pebble.NewBuilder().
		Sink(pebble.SinkFile).
		Directory(logsDir).
		Name("stress.log").
		MaxFileBytes(1 << 20). // Force frequent rotation (1MiB)
		MaxFileGenerations(5).
		BufferSize(50000).
		Workers(pebble.WorkersAuto).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start logger: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting stress test: %d producers, %d bursts, %d logs/burst.\n",
		numProducers, totalBursts, logsPerBurst)
	fmt.Println("Press Ctrl+C to stop early.")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	burstChan := make(chan int, numProducers)
	var completedBursts atomic.Int64

	g, gctx := errgroup.WithContext(ctx)

	// Burst submission
	g.Go(func() error {
		defer close(burstChan)
		for i := 1; i <= totalBursts; i++ {
			select {
			case burstChan <- i:
			case <-gctx.Done():
				fmt.Println("\n[Signal Received] Halting burst submission.")
				return nil
			}
		}
		return nil
	})

	startTime := time.Now()
	for p := 0; p < numProducers; p++ {
		seed := int64(p) + startTime.UnixNano()
		g.Go(func() error {
			r := rand.New(rand.NewSource(seed))
			for burstID := range burstChan {
				logBurst(logger, r, burstID)
				completed := completedBursts.Add(1)
				if completed%10 == 0 || completed == totalBursts {
					fmt.Printf("\rProgress: %d/%d bursts completed", completed, totalBursts)
				}
			}
			return nil
		})
	}

	_ = g.Wait()
	duration := time.Since(startTime)
	finalCompleted := completedBursts.Load()

	fmt.Printf("\n--- Test Finished ---")
	fmt.Printf("\nCompleted %d/%d bursts in %v\n", finalCompleted, totalBursts, duration.Round(time.Millisecond))
	if finalCompleted > 0 && duration.Seconds() > 0 {
		logsPerSec := float64(finalCompleted*logsPerBurst) / duration.Seconds()
		fmt.Printf("Approximate Logs/sec: %.2f\n", logsPerSec)
	}

	logger.Heartbeat()

	// --- Shutdown Logger ---
	fmt.Println("Shutting down logger (allowing up to 30s)...")
	if err := logger.Shutdown(30 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Logger shutdown error: %v\n", err)
	} else {
		fmt.Println("Logger shutdown complete.")
	}

	stats := logger.Stats()
	fmt.Printf("Processed: %d, dropped: %d, rotations: %d, rotation failures: %d, write failures: %d\n",
		stats.Processed, stats.Dropped, stats.Rotations, stats.RotationFailures, stats.WriteFailures)
	fmt.Printf("Check log files in '%s'.\n", logsDir)
}
