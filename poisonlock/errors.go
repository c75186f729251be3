package poisonlock

import "errors"

// ErrPoisoned is returned by every acquisition of a lock whose previous holder
// left a critical section abnormally.
var ErrPoisoned = errors.New("poisonlock: lock poisoned")
