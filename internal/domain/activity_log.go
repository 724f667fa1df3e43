package domain

// ActivityLogCap is the maximum number of activities retained per agent.
const ActivityLogCap = 100

// ActivityLog is a fixed-capacity journal that drops the oldest entry once
// full. Append is O(1); the zero-value cap is ActivityLogCap.
//
// Not safe for concurrent use; the owning controller serializes access.
type ActivityLog struct {
	buf   []Activity
	start int
	size  int
}

// NewActivityLog returns an empty log with the default capacity.
func NewActivityLog() *ActivityLog {
	return NewActivityLogCap(ActivityLogCap)
}

// NewActivityLogCap returns an empty log bounded at n entries.
func NewActivityLogCap(n int) *ActivityLog {
	if n <= 0 {
		n = ActivityLogCap
	}
	return &ActivityLog{buf: make([]Activity, n)}
}

// Append adds an activity, evicting the oldest entry when the log is full.
func (l *ActivityLog) Append(a Activity) {
	idx := (l.start + l.size) % len(l.buf)
	l.buf[idx] = a
	if l.size < len(l.buf) {
		l.size++
		return
	}
	l.start = (l.start + 1) % len(l.buf)
}

// Len returns the number of retained activities.
func (l *ActivityLog) Len() int {
	return l.size
}

// Snapshot returns the retained activities oldest first.
func (l *ActivityLog) Snapshot() []Activity {
	out := make([]Activity, l.size)
	for i := 0; i < l.size; i++ {
		out[i] = l.buf[(l.start+i)%len(l.buf)]
	}
	return out
}
