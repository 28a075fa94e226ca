// internal/session/store.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"upkept-workers/internal/common/logger"
	"upkept-workers/internal/models"
)

const (
	DefaultKeyPrefix = "upkept:session:"
	DefaultTTL       = 7 * 24 * time.Hour
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrStoreFailed     = errors.New("session store failed")
)

// Store holds session snapshots. Snapshots are values: callers read one,
// compute on it, and write the result back.
type Store interface {
	Get(ctx context.Context, id string) (models.SystemState, error)
	Save(ctx context.Context, state models.SystemState) (models.SystemState, error)
	Reset(ctx context.Context, id string) (models.SystemState, error)
}

// RedisStore keeps each session as a JSON document under prefix+id with a
// sliding TTL. Graph and analytics are recomputed on every read and write
// so a stored snapshot can never disagree with its entities.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	logger logger.Logger
	now    func() time.Time
}

func NewRedisStore(client redis.Cmdable, prefix string, ttl time.Duration, log logger.Logger) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: log,
		now:    time.Now,
	}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) Get(ctx context.Context, id string) (models.SystemState, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.SystemState{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return models.SystemState{}, fmt.Errorf("%w: get %s: %v", ErrStoreFailed, id, err)
	}

	var state models.SystemState
	if err := json.Unmarshal(raw, &state); err != nil {
		return models.SystemState{}, fmt.Errorf("%w: decode %s: %v", ErrStoreFailed, id, err)
	}
	return Refresh(state), nil
}

// Save refreshes the derived views, stamps lastUpdated, and writes the
// snapshot. A state without a session id is assigned a new one.
func (s *RedisStore) Save(ctx context.Context, state models.SystemState) (models.SystemState, error) {
	if state.SessionID == "" {
		state.SessionID = uuid.New().String()
	}
	state.LastUpdated = s.now().UTC().Format(time.RFC3339)
	state = Refresh(state)

	raw, err := json.Marshal(state)
	if err != nil {
		return models.SystemState{}, fmt.Errorf("%w: encode %s: %v", ErrStoreFailed, state.SessionID, err)
	}
	if err := s.client.Set(ctx, s.key(state.SessionID), raw, s.ttl).Err(); err != nil {
		return models.SystemState{}, fmt.Errorf("%w: set %s: %v", ErrStoreFailed, state.SessionID, err)
	}

	s.logger.Debug("session saved", map[string]interface{}{
		"sessionId": state.SessionID,
		"phase":     state.Phase,
		"tasks":     len(state.Tasks),
	})
	return state, nil
}

// Reset replaces a session with an empty idle one.
func (s *RedisStore) Reset(ctx context.Context, id string) (models.SystemState, error) {
	return s.Save(ctx, NewState(id, s.now()))
}

// GetOrNew returns the stored session, or a fresh idle one when none exists.
// The fresh state is not written.
func GetOrNew(ctx context.Context, st Store, id string, now time.Time) (models.SystemState, error) {
	state, err := st.Get(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		return NewState(id, now), nil
	}
	return state, err
}
