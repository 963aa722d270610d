package history

import (
	"context"
	"fmt"
	"time"

	pkgredis "github.com/briefbox/brief-core/internal/pkg/redis"
)

const detailCacheTTL = 10 * time.Minute

// detailCache is a redis read-through cache for detail fetches. Only
// finalized records are cached: their result never changes, so repeated
// reads return byte-identical bodies.
type detailCache struct {
	rc *pkgredis.Client
}

func newDetailCache(rc *pkgredis.Client) *detailCache {
	if rc == nil {
		return nil
	}
	return &detailCache{rc: rc}
}

func detailCacheKey(ownerID, id string) string {
	return fmt.Sprintf("brief:history_detail:%s:%s", ownerID, id)
}

func (c *detailCache) get(ctx context.Context, ownerID, id string) []byte {
	body, err := c.rc.GetBytes(ctx, detailCacheKey(ownerID, id))
	if err != nil {
		return nil
	}
	return body
}

func (c *detailCache) set(ctx context.Context, ownerID, id string, body []byte) {
	_ = c.rc.Set(ctx, detailCacheKey(ownerID, id), body, detailCacheTTL)
}
