package backend

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

// cache keeps recently resolved session users. Entries expire so profile
// changes made by the auth provider are picked up.
type cache struct {
	b     *Backend
	users *expirable.LRU[string, proto.User]
}

func newCache(b *Backend, size int, ttl time.Duration) *cache {
	if size <= 0 {
		size = 1
	}
	return &cache{
		b:     b,
		users: expirable.NewLRU[string, proto.User](size, nil, ttl),
	}
}

func (c *cache) Get(id string) (proto.User, bool) {
	return c.users.Get(id)
}

func (c *cache) Set(id string, u proto.User) {
	c.users.Add(id, u)
}

func (c *cache) Delete(id string) {
	c.users.Remove(id)
}

func (c *cache) Len() int {
	return c.users.Len()
}
