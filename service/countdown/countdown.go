// Package countdown derives the deal-end label shown on product views and
// refreshes it on a ticker for as long as a view is open.
package countdown

import (
	"context"
	"strconv"
	"sync"
	"time"

	"storefront.GO/service/query"
)

const (
	Ended = "Offer ended"
	Soon  = "Offer ends soon"

	// DefaultInterval is the refresh period of Watch.
	DefaultInterval = time.Second
)

// Label returns the countdown text for dealEndTime at now. ok is false when
// there is no deal or the timestamp cannot be parsed.
func Label(dealEndTime string, now time.Time) (label string, ok bool) {
	if dealEndTime == "" {
		return "", false
	}
	end, ok := query.ParseDate(dealEndTime)
	if !ok {
		return "", false
	}
	return LabelAt(end, now), true
}

// LabelAt formats the remaining time until end using its coarsest unit.
func LabelAt(end, now time.Time) string {
	if !end.After(now) {
		return Ended
	}
	diff := end.Sub(now)
	days := int(diff / (24 * time.Hour))
	hours := int(diff/time.Hour) % 24
	minutes := int(diff/time.Minute) % 60
	switch {
	case days > 0:
		return "Offer ends in " + plural(days, "day")
	case hours > 0:
		return "Offer ends in " + plural(hours, "hr")
	case minutes > 0:
		return "Offer ends in " + plural(minutes, "min")
	}
	return Soon
}

func plural(n int, unit string) string {
	s := strconv.Itoa(n) + " " + unit
	if n > 1 {
		s += "s"
	}
	return s
}

// Watch emits the label for dealEndTime immediately and then on every tick
// until ctx is done or the returned stop function is called. stop blocks
// until the ticker goroutine has exited and is safe to call more than once.
// Nothing is emitted when the deal has no valid end time.
func Watch(ctx context.Context, dealEndTime string, interval time.Duration, emit func(string)) (stop func()) {
	return watch(ctx, dealEndTime, interval, time.Now, emit)
}

func watch(ctx context.Context, dealEndTime string, interval time.Duration, now func() time.Time, emit func(string)) func() {
	if interval <= 0 {
		interval = DefaultInterval
	}
	label, ok := Label(dealEndTime, now())
	if !ok {
		return func() {}
	}
	emit(label)

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				label, _ := Label(dealEndTime, now())
				emit(label)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}
