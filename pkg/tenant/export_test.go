package tenant

import "time"

func SetCacheClock(c *MemoryCache, now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
