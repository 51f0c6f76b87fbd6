package store

import (
	"math/rand/v2"
	"time"
)

// idGen issues client-side ids from the clock plus a random suffix. Ids are
// strictly increasing within a process so archive entries never collide.
type idGen struct {
	last int64
}

func (g *idGen) next(now time.Time) int64 {
	id := now.UnixMilli()*1000 + rand.Int64N(1000)
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// observe raises the floor so ids loaded from storage are never reissued.
func (g *idGen) observe(id int64) {
	if id > g.last {
		g.last = id
	}
}
