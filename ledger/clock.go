package ledger

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/MixinNetwork/mixin/logger"
)

const clockStorePropertyKey = "LEDGER:CLOCK:HEIGHT"

// Clock hands out block heights, strictly increasing across restarts.
type Clock struct {
	sync.Mutex
	store  Store
	height uint64
}

func NewClock(store Store) (*Clock, error) {
	bs, err := store.ReadProperty([]byte(clockStorePropertyKey))
	if err != nil {
		return nil, err
	}
	clock := new(Clock)
	clock.store = store
	if len(bs) == 8 {
		clock.height = binary.BigEndian.Uint64(bs)
	}
	return clock, nil
}

func (c *Clock) Height() uint64 {
	c.Lock()
	defer c.Unlock()
	return c.height
}

func (c *Clock) Next() uint64 {
	c.Lock()
	defer c.Unlock()

	c.height += 1
	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, c.height)
	for {
		err := c.store.WriteProperty([]byte(clockStorePropertyKey), val)
		if err == nil {
			break
		}
		logger.Printf("Clock.Next(%d) => %v\n", c.height, err)
		time.Sleep(100 * time.Millisecond)
	}
	return c.height
}
