package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/sharath018/event-management-backend/utils"
)

// RateLimiter returns a Gin middleware that limits requests per IP.
// Uses the shared Redis instance when available so limits hold across
// replicas; falls back to an in-memory store otherwise.
func RateLimiter() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  100,
	}

	var store limiter.Store
	if client := utils.RedisClient(); client != nil {
		s, err := redisstore.NewStoreWithOptions(client, limiter.StoreOptions{
			Prefix: "ratelimit",
		})
		if err != nil {
			log.Printf("⚠️ Redis rate-limit store unavailable, using memory store: %v", err)
			store = memory.NewStore()
		} else {
			store = s
		}
	} else {
		store = memory.NewStore()
	}

	instance := limiter.New(store, rate)
	return ginlimiter.NewMiddleware(instance)
}
