package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"GeniusLabs/internal/app_errors"
	"GeniusLabs/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ClientEmailCtx = "client_email"
	RequestIDCtx   = "request_id"
)

func LoggingMiddleware(log logger.Log) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.New().String()
		c.Set(RequestIDCtx, requestID)

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		path := c.Request.URL.Path
		rawQuery := c.Request.URL.RawQuery
		if rawQuery != "" {
			path = fmt.Sprintf("%s?%s", path, rawQuery)
		}
		status := c.Writer.Status()

		msg := fmt.Sprintf("%s %s", method, path)

		log.Info(msg,
			"status", status,
			"latency", latency,
			"client_ip", clientIP,
			"request_id", requestID,
		)

		for _, ginErr := range c.Errors {
			log.ErrorErr("HTTP request error", ginErr.Err,
				"status", status,
				"method", method,
				"path", path,
				"request_id", requestID,
			)
		}
	}
}

// AuthMiddleware validates bearer tokens minted by the identity collaborator
// and stamps the caller's email into the context. Tokens are HMAC-signed;
// issuance lives outside this service.
func AuthMiddleware(log logger.Log, secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var token string
		if parts := strings.Split(authHeader, "Bearer "); len(parts) == 2 {
			token = parts[1]
		}
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		email, err := parseAccessToken(token, secretKey)
		if err != nil {
			log.Info("failed to parse token", logger.Err(err))
			if errors.Is(err, app_errors.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": app_errors.ErrTokenExpired.Error()})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "cant parse token"})
			return
		}

		c.Set(ClientEmailCtx, email)
		c.Next()
	}
}

func parseAccessToken(token, secretKey string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", app_errors.ErrTokenExpired
		}
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	email, _ := claims["email"].(string)
	if email == "" {
		email, _ = claims["sub"].(string)
	}
	if email == "" {
		return "", fmt.Errorf("token without subject")
	}
	return email, nil
}
