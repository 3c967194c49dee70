package services

import (
	"context"
	"path/filepath"
	"testing"

	"homehub/internal/database"
	"homehub/internal/delivery"
	"homehub/internal/models"
	"homehub/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return store.New(db)
}

func mustUser(t *testing.T, s *store.Store, username, email string) *models.User {
	t.Helper()
	user, err := s.GetOrCreateUser(context.Background(), username, email)
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// sentMessage records one delivery attempt made against the fake sink
type sentMessage struct {
	To  delivery.Recipient
	Msg delivery.Message
}

// fakeSink collects deliveries and can fail selected recipients
type fakeSink struct {
	sent     []sentMessage
	failWith map[string]error // keyed by username
}

func (f *fakeSink) Deliver(ctx context.Context, to delivery.Recipient, msg delivery.Message) error {
	f.sent = append(f.sent, sentMessage{To: to, Msg: msg})
	if err, ok := f.failWith[to.Username]; ok {
		return err
	}
	return nil
}
