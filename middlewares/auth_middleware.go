package middlewares

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SupabaseAuth verifies the caller's Supabase JWT and stores the verified
// claims in the gin context under "userID", "email" and "role". Supabase
// signs with HS256 using a base64-encoded shared secret and issues tokens
// from <url>/auth/v1 for the "authenticated" audience.
func SupabaseAuth(supabaseURL, jwtSecret string) gin.HandlerFunc {
	secret, secretErr := base64.StdEncoding.DecodeString(jwtSecret)
	issuer := strings.TrimRight(supabaseURL, "/") + "/auth/v1"

	return func(c *gin.Context) {
		if secretErr != nil || len(secret) == 0 {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured: SUPABASE_JWT_SECRET is not valid base64"})
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		},
			jwt.WithIssuer(issuer),
			jwt.WithAudience("authenticated"),
			jwt.WithLeeway(5*time.Minute),
			jwt.WithExpirationRequired(),
		)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "subject claim missing"})
			return
		}

		c.Set("userID", sub)
		if email, _ := claims["email"].(string); email != "" {
			c.Set("email", email)
		}
		if role, _ := claims["role"].(string); role != "" {
			c.Set("role", role)
		}
		c.Next()
	}
}
