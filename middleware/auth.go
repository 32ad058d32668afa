package middleware

import (
	"net/http"
	"strings"
	"time"

	userRepo "schedly/database/repository/user"
	"schedly/utils"

	"github.com/gin-gonic/gin"
)

// authCacheTTL bounds how long a revoked token can keep resolving from the
// auth cache.
const authCacheTTL = 5 * time.Minute

// JWTAuthMiddleware validates the bearer token and resolves it to a user via
// the stored token hash, so sign-out revokes tokens server-side. Resolved
// identities are cached in Redis keyed by the hash.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)

		if id, role, ok := cachedIdentity(c, computedHash); ok {
			c.Set("userID", id)
			c.Set("userRole", role)
			c.Next()
			return
		}

		u, err := users.GetByTokenHash(computedHash)
		if err != nil || u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked or user not found"})
			return
		}

		cacheIdentity(c, computedHash, u.ID, u.Role)

		c.Set("userID", u.ID)
		c.Set("userRole", u.Role)
		c.Next()
	}
}

func cachedIdentity(c *gin.Context, hash string) (string, string, bool) {
	val, err := utils.GetAuthCacheClient().Get(c.Request.Context(), "auth:"+hash).Result()
	if err != nil {
		return "", "", false
	}
	parts := strings.SplitN(val, "|", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func cacheIdentity(c *gin.Context, hash, id, role string) {
	utils.GetAuthCacheClient().Set(c.Request.Context(), "auth:"+hash, id+"|"+role, authCacheTTL)
}
