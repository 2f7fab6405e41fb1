package services

import "sync"

// userLocks serializes economy operations per user. Purchase, equip and claim
// are check-then-act against the same wallet/ownership rows, so two requests
// from the same user must never run their checks concurrently. There is no
// cross-user shared state, so one mutex per user is enough.
//
// Entries are never evicted: one idle *sync.Mutex per user who ever hit an
// economy endpoint. Fine for the current population; if the user base grows
// unbounded, swap in a striped lock (fixed-size array indexed by user hash).
var userLocks sync.Map // external_user_id → *sync.Mutex

func lockUser(externalUserID string) func() {
	v, _ := userLocks.LoadOrStore(externalUserID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
