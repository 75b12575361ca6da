package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"timetracker/config"
	"timetracker/models"
)

const invitationTokenLifetime = 7 * 24 * time.Hour

func nowUTC() time.Time {
	return time.Now().UTC()
}

func generateAccessToken(user *models.User, tenantID uuid.UUID) (string, error) {
	return signAccessToken(user.ID, tenantID, user.Email, string(user.Role))
}

func signAccessToken(userID, tenantID uuid.UUID, email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":   userID.String(),
		"tenant_id": tenantID.String(),
		"email":     email,
		"role":      role,
		"type":      "access",
		"iat":       now.Unix(),
		"nbf":       now.Unix(),
		"exp":       now.Add(config.JWTExpiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

func generateInvitationToken(email string, tenantID uuid.UUID, role models.UserRole) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"email":     email,
		"tenant_id": tenantID.String(),
		"role":      string(role),
		"type":      "invitation",
		"iat":       now.Unix(),
		"nbf":       now.Unix(),
		"exp":       now.Add(invitationTokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

func verifyInvitationToken(tokenString string) (email string, tenantID uuid.UUID, role models.UserRole, err error) {
	claims := jwt.MapClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return config.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return "", uuid.Nil, "", errors.New("invalid invitation token")
	}

	if tokenType, _ := claims["type"].(string); tokenType != "invitation" {
		return "", uuid.Nil, "", errors.New("not an invitation token")
	}

	email, _ = claims["email"].(string)
	rawTenant, _ := claims["tenant_id"].(string)
	rawRole, _ := claims["role"].(string)

	tenantID, err = uuid.Parse(rawTenant)
	if err != nil || email == "" {
		return "", uuid.Nil, "", errors.New("malformed invitation token")
	}

	role = models.UserRole(rawRole)
	if !role.Valid() {
		role = models.RoleUser
	}

	return email, tenantID, role, nil
}
