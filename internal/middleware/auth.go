package middleware

import (
	"net/http"                      // HTTP status codes
	"strings"                       // String manipulation
	"tokenestate/internal/policy"   // Policy core
	"tokenestate/internal/utils"    // Token and wallet helpers

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// identityKey is the gin context key the resolved identity is stored under
const identityKey = "identity"

// Auth resolves the bearer credential on every request and stores the
// resulting identity in the context. The bearer value is either a session
// token minted by the login endpoint or the raw wallet address itself; in
// both cases the role is read fresh from the users table.
func Auth(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		// The Authorization header must be present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		bearer := strings.TrimPrefix(authHeader, "Bearer ")
		var wallet string
		if claims, err := utils.ParseJWT(bearer, jwtSecret); err == nil {
			wallet = claims.Wallet // Session token path
		} else if norm, err := utils.NormalizeWallet(bearer); err == nil {
			wallet = norm // Raw wallet credential path
		} else {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid bearer credential"})
			return
		}
		ident, err := policy.ResolveWallet(db, wallet)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown credential"})
			return
		}
		c.Set(identityKey, ident) // Store resolved identity for handlers
		c.Next()
	}
}

// CurrentIdentity returns the identity resolved by Auth for this request
func CurrentIdentity(c *gin.Context) (*policy.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	ident, ok := v.(*policy.Identity)
	return ident, ok
}
