package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"api/config"
	"api/database"
	"api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const AuthCookieName = "auth_token"

var ErrNotAuthenticated = errors.New("not authenticated")

// GenerateToken creates a signed JWT for the given user
func GenerateToken(user models.User, lifetime time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// tokenFromRequest extracts the JWT from the auth cookie or the
// Authorization header.
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func userFromToken(tokenString string) (models.User, error) {
	var user models.User

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return user, ErrNotAuthenticated
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return user, ErrNotAuthenticated
	}

	if err := database.DB.First(&user, "id = ?", claims.Subject).Error; err != nil {
		return user, ErrNotAuthenticated
	}
	return user, nil
}

// GetUserFromRequest resolves the authenticated user or aborts with 401.
// Handlers must return immediately when err is non-nil.
func GetUserFromRequest(c *gin.Context) (models.User, error) {
	tokenString := tokenFromRequest(c)
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return models.User{}, ErrNotAuthenticated
	}

	user, err := userFromToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return models.User{}, err
	}
	return user, nil
}

// GetOptionalUser resolves the authenticated user if a valid session is
// present. Absence of a session means the request is anonymous; it is
// never an error here.
func GetOptionalUser(c *gin.Context) *models.User {
	tokenString := tokenFromRequest(c)
	if tokenString == "" {
		return nil
	}

	user, err := userFromToken(tokenString)
	if err != nil {
		return nil
	}
	return &user
}
