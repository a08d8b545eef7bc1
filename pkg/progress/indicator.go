// Package progress draws terminal progress displays: a multi-worker tracker
// for concurrent jobs and a single-line bar for sequential loops.
package progress

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// workerState is the last observed activity of one worker.
type workerState struct {
	completed  int
	currentJob string
	lastUpdate time.Time
}

// Tracker renders progress for a pool of workers, redrawing in place at a
// bounded rate.
type Tracker struct {
	mu          sync.Mutex
	workers     []workerState
	totalJobs   int
	completed   int
	startTime   time.Time
	lastDisplay time.Time
	displayRate time.Duration
}

// NewTracker creates a tracker for workerCount workers and totalJobs jobs.
func NewTracker(workerCount, totalJobs int) *Tracker {
	return &Tracker{
		workers:     make([]workerState, workerCount),
		totalJobs:   totalJobs,
		startTime:   time.Now(),
		displayRate: 500 * time.Millisecond,
	}
}

// UpdateWorker records that a worker started or finished a job and redraws
// the display if enough time has passed since the last draw.
func (t *Tracker) UpdateWorker(workerID int, jobDescription string, completed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if workerID < 0 || workerID >= len(t.workers) {
		return
	}

	w := &t.workers[workerID]
	w.currentJob = jobDescription
	w.lastUpdate = time.Now()

	if completed {
		w.completed++
		t.completed++
	}

	if time.Since(t.lastDisplay) >= t.displayRate {
		t.display()
		t.lastDisplay = time.Now()
	}
}

func (t *Tracker) display() {
	elapsed := time.Since(t.startTime)

	percentage := 100.0
	if t.totalJobs > 0 {
		percentage = float64(t.completed) / float64(t.totalJobs) * 100
	}

	var eta time.Duration
	if t.completed > 0 {
		remaining := t.totalJobs - t.completed
		eta = elapsed / time.Duration(t.completed) * time.Duration(remaining)
	}

	fmt.Print("\033[2K\r")
	fmt.Printf("Progress: %d/%d (%.1f%%) | Elapsed: %v | ETA: %v\n",
		t.completed, t.totalJobs, percentage,
		elapsed.Round(time.Second), eta.Round(time.Second))

	active := 0
	for i := range t.workers {
		w := &t.workers[i]
		if w.currentJob == "" {
			continue
		}
		active++

		status := "ACTIVE"
		if time.Since(w.lastUpdate) > 2*time.Second {
			status = "STALLED"
		}

		job := w.currentJob
		if len(job) > 30 {
			job = job[:27] + "..."
		}

		fmt.Printf("  Worker %d [%s] %s (done: %d)\n", i, status, job, w.completed)
	}

	if active == 0 {
		fmt.Println("  All workers idle")
	}

	// Move back up so the next draw overwrites this one.
	fmt.Printf("\033[%dA", active+2)
}

// Finish clears the in-place display and prints the final totals.
func (t *Tracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()

	lines := len(t.workers) + 3
	for i := 0; i < lines; i++ {
		fmt.Print("\033[2K\n")
	}
	fmt.Printf("\033[%dA", lines)

	elapsed := time.Since(t.startTime)
	fmt.Printf("Completed %d jobs in %v\n", t.completed, elapsed.Round(time.Millisecond))

	for i := range t.workers {
		rate := 0.0
		if elapsed.Seconds() > 0 {
			rate = float64(t.workers[i].completed) / elapsed.Seconds()
		}
		fmt.Printf("  Worker %d: %d jobs (%.1f jobs/sec)\n", i, t.workers[i].completed, rate)
	}
	fmt.Println()
}

// Bar is a single-line progress bar for sequential loops.
type Bar struct {
	total   int
	current int
	label   string
	width   int
}

// NewBar creates a bar for total steps with a leading label.
func NewBar(total int, label string) *Bar {
	return &Bar{
		total: total,
		label: label,
		width: 40,
	}
}

// Update sets the current step and redraws the bar.
func (b *Bar) Update(current int) {
	b.current = current
	b.display()
}

func (b *Bar) display() {
	percentage := 100.0
	filled := b.width
	if b.total > 0 {
		percentage = float64(b.current) / float64(b.total) * 100
		filled = b.width * b.current / b.total
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", b.width-filled)
	fmt.Printf("\r%s [%s] %d/%d (%.1f%%)", b.label, bar, b.current, b.total, percentage)
}

// Finish fills the bar and terminates the line.
func (b *Bar) Finish() {
	b.Update(b.total)
	fmt.Println(" DONE")
}
