package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upkept-workers/internal/common/logger"
	"upkept-workers/internal/models"
)

// ==========================
// Helpers
// ==========================

var storeTime = time.Date(2025, 2, 20, 12, 0, 0, 0, time.UTC)

func newMiniredisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	st := NewRedisStore(client, "test:session:", time.Hour, logger.NewTestLogger(t))
	st.now = func() time.Time { return storeTime }
	return st, mr
}

// ==========================
// Round Trip
// ==========================

func TestRedisStore_SaveAndGet(t *testing.T) {
	st, mr := newMiniredisStore(t)
	ctx := context.Background()

	saved, err := st.Save(ctx, graphState())
	require.NoError(t, err)
	assert.NotEmpty(t, saved.SessionID, "an id is assigned when missing")
	assert.Equal(t, "2025-02-20T12:00:00Z", saved.LastUpdated)
	assert.Len(t, saved.Graph.Nodes, 6)

	key := "test:session:" + saved.SessionID
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))

	loaded, err := st.Get(ctx, saved.SessionID)
	require.NoError(t, err)
	assert.Equal(t, saved.SessionID, loaded.SessionID)
	assert.Equal(t, saved.Tasks, loaded.Tasks)
	assert.ElementsMatch(t, saved.Graph.Edges, loaded.Graph.Edges)
	assert.Equal(t, saved.Analytics, loaded.Analytics)
}

func TestRedisStore_GetRecomputesDerivedViews(t *testing.T) {
	st, mr := newMiniredisStore(t)

	stale := graphState()
	stale.SessionID = "s-stale"
	stale.Analytics.TotalTasks = 99
	stale.Graph = models.Graph{Nodes: []models.GraphNode{{ID: "ghost"}}}
	raw, err := json.Marshal(stale)
	require.NoError(t, err)
	require.NoError(t, mr.Set("test:session:s-stale", string(raw)))

	loaded, err := st.Get(context.Background(), "s-stale")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Analytics.TotalTasks)
	for _, n := range loaded.Graph.Nodes {
		assert.NotEqual(t, "ghost", n.ID)
	}
}

func TestRedisStore_GetMissing(t *testing.T) {
	st, _ := newMiniredisStore(t)

	_, err := st.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_GetCorrupt(t *testing.T) {
	st, mr := newMiniredisStore(t)
	require.NoError(t, mr.Set("test:session:bad", "{not json"))

	_, err := st.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrStoreFailed)
}

func TestRedisStore_Reset(t *testing.T) {
	st, _ := newMiniredisStore(t)
	ctx := context.Background()

	state := graphState()
	state.SessionID = "s-1"
	_, err := st.Save(ctx, state)
	require.NoError(t, err)

	fresh, err := st.Reset(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, models.PhaseIdle, fresh.Phase)
	assert.Empty(t, fresh.Tasks)

	loaded, err := st.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Empty(t, loaded.Tasks)
	assert.Equal(t, 100, loaded.Analytics.ComplianceScore)
}

func TestRedisStore_SaveFailure(t *testing.T) {
	st, mr := newMiniredisStore(t)
	mr.SetError("ERR store unavailable")

	_, err := st.Save(context.Background(), graphState())
	assert.ErrorIs(t, err, ErrStoreFailed)
}

func TestGetOrNew(t *testing.T) {
	st, _ := newMiniredisStore(t)

	state, err := GetOrNew(context.Background(), st, "s-new", storeTime)
	require.NoError(t, err)
	assert.Equal(t, "s-new", state.SessionID)
	assert.Equal(t, models.PhaseIdle, state.Phase)
}

// ==========================
// Client Errors
// ==========================

func TestRedisStore_GetClientError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	st := NewRedisStore(client, "", 0, nil)

	mock.ExpectGet(DefaultKeyPrefix + "s-1").SetErr(errors.New("connection refused"))

	_, err := st.Get(context.Background(), "s-1")
	assert.ErrorIs(t, err, ErrStoreFailed)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_GetNil(t *testing.T) {
	client, mock := redismock.NewClientMock()
	st := NewRedisStore(client, "", 0, nil)

	mock.ExpectGet(DefaultKeyPrefix + "s-1").RedisNil()

	_, err := st.Get(context.Background(), "s-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewRedisStore_Defaults(t *testing.T) {
	client, _ := redismock.NewClientMock()
	st := NewRedisStore(client, "", 0, nil)

	assert.Equal(t, DefaultKeyPrefix, st.prefix)
	assert.Equal(t, DefaultTTL, st.ttl)
	assert.NotNil(t, st.logger)
}
