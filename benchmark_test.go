// FILE: lixenwraith/pebble/benchmark_test.go
package pebble

import (
	"testing"
)

// BenchmarkLoggerInfo benchmarks the performance of standard Info logging
func BenchmarkLoggerInfo(b *testing.B) {
	logger, _ := createTestLogger(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", i)
	}
}

// BenchmarkLoggerFiltered benchmarks records rejected by the level filter
func BenchmarkLoggerFiltered(b *testing.B) {
	logger, _ := createTestLogger(b)
	if err := logger.ApplyOverride("level=error"); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug("filtered", i)
	}
}

// BenchmarkLoggerComposite benchmarks values rendered through the dump fallback
func BenchmarkLoggerComposite(b *testing.B) {
	logger, _ := createTestLogger(b)
	fields := map[string]any{
		"user_id": 123,
		"action":  "benchmark",
		"value":   42.5,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark", fields)
	}
}

// BenchmarkConcurrentLogging benchmarks the logger's performance under concurrent load
func BenchmarkConcurrentLogging(b *testing.B) {
	logger, _ := createTestLogger(b)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			logger.Info("concurrent", i)
			i++
		}
	})
}

// BenchmarkRecordQueue benchmarks push and pop on an unbounded queue
func BenchmarkRecordQueue(b *testing.B) {
	q := newRecordQueue(0)
	record := logRecord{Level: LevelInfo, Text: "queued"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.push(record)
		q.pop()
	}
}
