// FILE: lixenwraith/pebble/processor.go
package pebble

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DispatcherState describes what the dispatcher goroutine is doing
type DispatcherState int32

const (
	DispatcherIdle DispatcherState = iota
	DispatcherDraining
	DispatcherStopping
	DispatcherStopped
)

// String returns the state name
func (s DispatcherState) String() string {
	switch s {
	case DispatcherIdle:
		return "idle"
	case DispatcherDraining:
		return "draining"
	case DispatcherStopping:
		return "stopping"
	case DispatcherStopped:
		return "stopped"
	default:
		return fmt.Sprintf("DispatcherState(%d)", int32(s))
	}
}

// DispatcherState returns the current dispatcher state
func (l *Logger) DispatcherState() DispatcherState {
	return DispatcherState(l.state.Dispatcher.Load())
}

// setDispatcherState records a state transition
func (l *Logger) setDispatcherState(s DispatcherState) {
	l.state.Dispatcher.Store(int32(s))
}

// processRecords is the dispatcher loop running in a separate goroutine.
// It exits after ctx is cancelled and every queued record has been handed to a sink.
func (l *Logger) processRecords(ctx context.Context, q *recordQueue, pool *WorkerPool, done chan<- struct{}) {
	l.state.ProcessorExited.Store(false) // Mark processor as running
	defer func() {
		l.setDispatcherState(DispatcherStopped)
		l.state.ProcessorExited.Store(true)
		close(done)
	}()

	l.setDispatcherState(DispatcherIdle)

	// --- Main Loop ---
	for {
		select {
		case <-q.wait():
			l.setDispatcherState(DispatcherDraining)
			l.drainQueue(q, pool)
			l.setDispatcherState(DispatcherIdle)

		case confirmChan := <-l.state.flushRequestChan:
			l.handleFlushRequest(q, pool, confirmChan)

		case <-ctx.Done():
			l.setDispatcherState(DispatcherStopping)
			q.close()
			l.drainQueue(q, pool)
			if pool != nil {
				timeout := time.Duration(l.getConfig().StopTimeoutMs) * time.Millisecond
				if err := pool.Shutdown(timeout); err != nil {
					l.diag.Report("worker pool shutdown incomplete", err)
				}
			}
			return
		}
	}
}

// drainQueue pops until the queue is empty. The queue lock is held only to remove the head.
func (l *Logger) drainQueue(q *recordQueue, pool *WorkerPool) {
	for {
		record, ok := q.pop()
		if !ok {
			return
		}
		l.dispatchRecord(record, pool)
	}
}

// dispatchRecord hands a record to the pool, or writes it inline when there is none
func (l *Logger) dispatchRecord(record logRecord, pool *WorkerPool) {
	if pool == nil {
		l.processLogRecord(record)
		return
	}

	if _, err := pool.Submit(func() { l.processLogRecord(record) }); err != nil {
		l.diag.Report("worker pool rejected record, writing inline", err, zap.String("level", levelName(record.Level)))
		l.processLogRecord(record)
	}
}

// processLogRecord writes a record to every sink selected by the current format
func (l *Logger) processLogRecord(record logRecord) {
	f := l.format.Snapshot()

	ok := true
	if f.toConsole() {
		if err := l.console.Write(record.Level, record.Text); err != nil {
			ok = false
		}
	}
	if f.toFile() {
		if err := l.file.Write(f, record.Text); err != nil {
			ok = false
		}
	}

	if ok {
		l.state.TotalLogsProcessed.Add(1)
	}
}

// handleFlushRequest drains the queue, waits for in-flight writes and confirms
func (l *Logger) handleFlushRequest(q *recordQueue, pool *WorkerPool, confirmChan chan struct{}) {
	l.drainQueue(q, pool)
	if pool != nil {
		pool.Wait()
	}
	close(confirmChan) // Signal completion back to the Flush caller
}
