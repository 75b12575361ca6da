package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"timetracker/config"
)

func init() {
	config.JWTSecret = []byte("service-test-secret")
	config.JWTExpiration = time.Hour
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	url := fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := config.OpenDB(url, false)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

type captureMailer struct {
	sent []string
}

func (m *captureMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, to)
	return nil
}
