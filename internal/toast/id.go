package toast

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// entropyPool is a pool of ulid.MonotonicEntropy
var entropyPool = sync.Pool{
	New: func() any {
		return ulid.Monotonic(rand.Reader, 0)
	},
}

// generateID generates a new ULID: millisecond timestamp plus random
// suffix, unique across the process lifetime.
func generateID() string {
	e := entropyPool.Get().(*ulid.MonotonicEntropy)
	defer entropyPool.Put(e)
	ts := ulid.Timestamp(time.Now())
	return ulid.MustNew(ts, e).String()
}
