// FILE: lixenwraith/pebble/cmd/simple/main.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/lixenwraith/pebble"
)

const configFile = "simple_config.toml"

// Example TOML content
var tomlContent = `
# Example simple_config.toml
[pebble]
  level = "debug"
  sink = "both"
  directory = "./simple_logs"
  name = "simple.log"
  max_file_bytes = 4096
  max_file_generations = 3
  console_color = true
`

func main() {
	fmt.Println("--- Simple Logger Example ---")

	// --- Setup Config ---
	if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write example config: %v\n", err)
	} else {
		fmt.Printf("Created example config file: %s\n", configFile)
	}

	cfg, err := pebble.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v. Using defaults.\n", err)
		cfg = pebble.DefaultConfig()
	}

	// --- Initialize Logger ---
	logger := pebble.NewLogger()
	if err := logger.ApplyConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to apply config: %v\n", err)
		os.Exit(1)
	}

	// Middleware runs once, before steady-state logging
	err = logger.Middleware().
		Add(pebble.DailyFileSuffix{}, pebble.CustomTag{Tag: "simple"}, pebble.ThreadIDTag{}).
		Add(pebble.TraceHere("startup")).
		Apply()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to apply middleware: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Logger started, writing to %s\n", logger.Format().Snapshot().Name)

	// --- Logging ---
	logger.Debug("This is a debug message.", "user_id", 123)
	logger.Info("Application starting...")
	logger.Warn("Potential issue detected.", "threshold", 0.95)
	logger.Error("An error occurred!", "code", 500)
	logger.Fatal("Fatal records are logged, the process keeps running.")

	sum := pebble.TraceCall(logger, func() int { return 40 + 2 }, 40, 2)
	logger.Infof("Traced call returned %d", sum)

	// Logging from goroutines
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("Goroutine started", "id="+strconv.Itoa(id))
			time.Sleep(time.Duration(50+id*50) * time.Millisecond)
			logger.Info("Goroutine finished", "id="+strconv.Itoa(id))
		}(i)
	}

	wg.Wait()
	fmt.Println("Goroutines finished.")

	// --- Shutdown Logger ---
	fmt.Println("Shutting down logger...")
	if err := logger.Shutdown(2 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Logger shutdown error: %v\n", err)
	} else {
		fmt.Println("Logger shutdown complete.")
	}

	stats := logger.Stats()
	fmt.Printf("Processed: %d, dropped: %d, rotations: %d\n", stats.Processed, stats.Dropped, stats.Rotations)
	fmt.Println("--- Example Finished ---")
}
