package honor

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// KeyLock hands out one mutex per key. Mutexes are never evicted; the key
// space is the guild's member list.
type KeyLock struct {
	locks *xsync.MapOf[string, *sync.Mutex]
}

func NewKeyLock() *KeyLock {
	return &KeyLock{locks: xsync.NewMapOf[string, *sync.Mutex]()}
}

// Lock blocks until key is free and returns the matching unlock func.
func (k *KeyLock) Lock(key string) func() {
	mu, _ := k.locks.LoadOrCompute(key, func() *sync.Mutex {
		return &sync.Mutex{}
	})
	mu.Lock()
	return mu.Unlock
}
