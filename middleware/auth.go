package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"timetracker/config"
	"timetracker/helper"
	"timetracker/models"
)

// httpHelper only emits envelope errors; it never needs the translator
// that handlers get through NewHTTPHelper.
var httpHelper = &helper.HTTPHelper{}

type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	TokenType string    `json:"type"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c.Role == string(models.RoleAdmin)
}

// AuthMiddleware validates the Bearer token and stores the claims in the
// request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httpHelper.SendUnauthorizedError(c, "Authorization header required", httpHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			httpHelper.SendUnauthorizedError(c, "Bearer token required", httpHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		claims := &Claims{}

		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return config.JWTSecret, nil
		})

		if err != nil {
			httpHelper.SendUnauthorizedError(c, "Invalid token: "+err.Error(), httpHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		if !token.Valid {
			httpHelper.SendUnauthorizedError(c, "Token is not valid", httpHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			httpHelper.SendUnauthorizedError(c, "Not an access token", httpHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Set("user_id", claims.UserID)
		c.Set("tenant_id", claims.TenantID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// GetClaims returns the authenticated claims stored by AuthMiddleware.
func GetClaims(c *gin.Context) *Claims {
	value, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, _ := value.(*Claims)
	return claims
}

// RequireAdmin rejects requests from non-admin users.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			httpHelper.SendUnauthorizedError(c, "User not authenticated", httpHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		if !claims.IsAdmin() {
			httpHelper.SendForbiddenError(c, "Insufficient permissions", httpHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Next()
	}
}

// TenantContext resolves the working tenant for the request. A request may
// carry an X-Tenant-ID header, which must match the token's tenant; the
// tenant itself must exist and be active.
func TenantContext(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			httpHelper.SendUnauthorizedError(c, "User not authenticated", httpHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		tenantID := claims.TenantID
		if header := c.GetHeader("X-Tenant-ID"); header != "" {
			headerID, err := uuid.Parse(header)
			if err != nil {
				httpHelper.SendBadRequest(c, "Invalid X-Tenant-ID header", httpHelper.EmptyJsonMap())
				c.Abort()
				return
			}
			if headerID != claims.TenantID {
				httpHelper.SendForbiddenError(c, "Access to this tenant is not allowed", httpHelper.EmptyJsonMap())
				c.Abort()
				return
			}
			tenantID = headerID
		}

		var tenant models.Tenant
		err := db.Where("id = ? AND active = ?", tenantID, true).First(&tenant).Error
		if err != nil {
			httpHelper.SendNotFoundError(c, "Tenant not found", httpHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Set("tenant", &tenant)

		c.Next()
	}
}
