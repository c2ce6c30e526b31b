package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	userRepo "stayhub/database/repository/user"
	"stayhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type cacheVerdict int

const (
	cacheAccept cacheVerdict = iota
	cacheReject
	cacheSkip
)

// verdictForCachedHash decides what a cache lookup means for the token.
// A missing entry (redis.Nil) is a rejection: every issued token is
// cached for its full lifetime, so absence means it was revoked. Only
// an unreachable cache degrades to the plain signature check.
func verdictForCachedHash(cachedHash string, err error, computedHash string) cacheVerdict {
	switch {
	case err == redis.Nil:
		return cacheReject
	case err != nil:
		return cacheSkip
	case cachedHash != computedHash:
		return cacheReject
	}
	return cacheAccept
}

// AuthRequired validates the bearer token, checks its hash against the
// auth cache, loads the user and exposes it to handlers via the context
// keys "userID" and "currentUser".
func AuthRequired(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if authCache := utils.AuthCacheClient; authCache != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			cachedHash, err := authCache.Get(ctx, utils.AuthCachePrefix+userID).Result()
			cancel()
			switch verdictForCachedHash(cachedHash, err, utils.HashToken(tokenString)) {
			case cacheReject:
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked or mismatched"})
				return
			case cacheSkip:
				zap.L().Warn("auth cache lookup failed, continuing without it",
					zap.String("userID", userID), zap.Error(err))
			}
		}

		user, err := users.GetByID(userID)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}

		c.Set("userID", userID)
		c.Set("currentUser", user)
		c.Next()
	}
}
