package input

import "fmt"

// CollectOptions wires one turn's input collection together.
type CollectOptions struct {
	NewCollector CollectorFactory
	TimerStatus  TimerStatusSource
	Sink         CommandSink
}

// Collect runs an input-collection loop on its own goroutine and returns a
// channel that yields the loop's exit reason once collection has ended.
//
// The collector is constructed inside the goroutine so that per-turn
// resources, such as the terminal's raw input mode, are acquired and
// released on the goroutine that uses them. The exit reason is delivered
// only after the collector has been closed, so a caller starting the next
// turn never overlaps the previous turn's release. Failing to construct or
// close the collector leaves the input device in an unknown mode and
// panics.
func Collect(opts CollectOptions) <-chan ExitReason {
	done := make(chan ExitReason, 1)
	go func() {
		collector, err := opts.NewCollector()
		if err != nil {
			panic(fmt.Sprintf("failed to create command collector: %v", err))
		}
		done <- runLoop(collector, opts)
	}()
	return done
}

func runLoop(collector CommandCollector, opts CollectOptions) ExitReason {
	defer func() {
		if err := collector.Close(); err != nil {
			panic(fmt.Sprintf("failed to close command collector: %v", err))
		}
	}()

	loop := NewLoop(NewLoopOptions{
		TimerStatus: opts.TimerStatus,
		Collector:   collector,
		Sink:        opts.Sink,
	})
	return loop.Run()
}
