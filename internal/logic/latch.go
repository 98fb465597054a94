package logic

import "sync/atomic"

// Latch records that activity happened since it was last consumed.
//
// Signal may be called from any goroutine (GPIO edge handler, MQTT callback)
// at any time. Consume is called by the single main loop once per tick.
// Neither call takes a lock.
type Latch struct {
	flag atomic.Bool
}

// Signal marks activity. Repeated calls before the next Consume coalesce.
func (l *Latch) Signal() {
	l.flag.Store(true)
}

// Consume returns whether activity was signalled and clears the latch in the
// same atomic step, so a Signal racing with Consume is seen exactly once.
func (l *Latch) Consume() bool {
	return l.flag.Swap(false)
}
