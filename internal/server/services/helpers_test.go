package services

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/LouisLiuNova/SyncHub/internal/dbx"
	"github.com/LouisLiuNova/SyncHub/internal/logging"
	"github.com/LouisLiuNova/SyncHub/internal/server/auth"
	"github.com/LouisLiuNova/SyncHub/internal/server/models"
	"github.com/LouisLiuNova/SyncHub/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

type recordingHub struct {
	mu     sync.Mutex
	topics []string
}

func (h *recordingHub) Broadcast(topic string) {
	h.mu.Lock()
	h.topics = append(h.topics, topic)
	h.mu.Unlock()
}

func (h *recordingHub) Topics() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.topics...)
}

type env struct {
	db        *sql.DB
	rm        *repomanager.SQLRepositoryManager
	guard     *auth.Guard
	hub       *recordingHub
	users     *UserService
	tags      *TagService
	clipboard *ClipboardService
}

// tick returns a clock that advances one second per call.
func tick(start time.Time) clock {
	var mu sync.Mutex
	cur := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(time.Second)
		return cur
	}
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repomanager.Open(ctx, dbx.DialectSQLite, "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rm := repomanager.NewSQLRepositoryManager(dbx.DialectSQLite)
	require.NoError(t, rm.RunMigrations(ctx, db))

	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour, time.Minute)
	guard := auth.NewGuard(tokens, rm.Users(db))
	h := &recordingHub{}
	log := logging.Nop{}

	clk := tick(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC))

	e := &env{
		db:        db,
		rm:        rm,
		guard:     guard,
		hub:       h,
		users:     NewUserService(db, rm, guard, log),
		tags:      NewTagService(db, rm, h, log),
		clipboard: NewClipboardService(db, rm, guard, h, log),
	}
	e.users.now, e.tags.now, e.clipboard.now = clk, clk, clk
	return e
}

func (e *env) register(t *testing.T, name string) models.Identity {
	t.Helper()
	u, err := e.users.Register(context.Background(), name, "pw1")
	require.NoError(t, err)
	return models.Identity{UserID: u.ID, UserName: u.UserName}
}
