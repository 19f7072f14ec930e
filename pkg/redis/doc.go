// Package redis connects to Redis with go-redis/v9. The edge uses it as
// the shared tenant cache backend when TENANT_CACHE_DRIVER=redis.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	cache := tenant.NewRedisCache(client, tenant.DefaultRedisKeyPrefix)
package redis
