package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

var (
	statusGood = color.New(color.FgGreen)
	statusBad  = color.New(color.FgRed)
	statusWarn = color.New(color.FgYellow)
	statusHead = color.New(color.Bold)
)

// PerformanceTimer tracks named phases of a command run
type PerformanceTimer struct {
	start  time.Time
	events []timedEvent
	open   map[string]time.Time
}

type timedEvent struct {
	name     string
	duration time.Duration
}

// NewPerformanceTimer creates a timer starting now
func NewPerformanceTimer() *PerformanceTimer {
	return &PerformanceTimer{
		start: time.Now(),
		open:  map[string]time.Time{},
	}
}

// StartEvent begins timing a named phase
func (t *PerformanceTimer) StartEvent(name string) {
	t.open[name] = time.Now()
}

// StopEvent finishes a named phase
func (t *PerformanceTimer) StopEvent(name string) {
	started, ok := t.open[name]
	if !ok {
		return
	}
	delete(t.open, name)
	t.events = append(t.events, timedEvent{name: name, duration: time.Since(started)})
}

// PrintSummary prints per-phase timings and the overall elapsed time
func (t *PerformanceTimer) PrintSummary() {
	statusHead.Println("\nTiming")
	for _, e := range t.events {
		fmt.Printf("   %-24s %s\n", e.name, e.duration.Round(time.Microsecond))
	}
	fmt.Printf("   %-24s %s\n", "total", time.Since(t.start).Round(time.Microsecond))
}
