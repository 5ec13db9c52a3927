package handle

import (
	"maps"
	"sync"
)

var tracker = struct {
	sync.Mutex
	live map[string]int64
}{live: make(map[string]int64)}

func track(kind string, delta int64) {
	tracker.Lock()
	defer tracker.Unlock()
	n := tracker.live[kind] + delta
	if n <= 0 {
		delete(tracker.live, kind)
		return
	}
	tracker.live[kind] = n
}

// Snapshot returns the number of live handles per kind.
func Snapshot() map[string]int64 {
	tracker.Lock()
	defer tracker.Unlock()
	return maps.Clone(tracker.live)
}

// LiveCount returns the number of live handles of kind.
func LiveCount(kind string) int64 {
	tracker.Lock()
	defer tracker.Unlock()
	return tracker.live[kind]
}
