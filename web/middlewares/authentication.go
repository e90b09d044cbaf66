package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"tempora.com/tempora/security"
	"tempora.com/tempora/web/common"
)

const identityKey = "identity"

func parseJwt(tokenStr string, jwtSecret []byte) (*security.IdentityClaims, error) {
	claims := &security.IdentityClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Authentication checks for a valid bearer token or application cookie and
// puts the employee identity on the context.
func Authentication(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			cookie, err := c.Cookie("tempora.ApplicationCookie")
			if err != nil {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}

			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}

			tokenStr = parts[1]
		}

		claims, err := parseJwt(tokenStr, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}
		if claims.EmployeeID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("token carries no employee identity"))
			return
		}

		c.Set(identityKey, claims.Identity)
		c.Next()
	}
}

// CurrentEmployeeID returns the authenticated actor. Handlers thread this
// id explicitly into every workflow operation; there is no ambient session
// state below the middleware.
func CurrentEmployeeID(c *gin.Context) (int32, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return 0, false
	}
	identity, ok := v.(security.Identity)
	if !ok {
		return 0, false
	}
	return identity.EmployeeID, true
}
