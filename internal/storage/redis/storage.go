package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sendagame/progress/internal/model"
	"github.com/sendagame/progress/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Compare-and-swap saves run under WATCH so concurrent writers to the
// same record surface as model.ErrVersionConflict instead of lost updates.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	key := playerKey(player.ID)

	txn := func(tx *redis.Tx) error {
		stored, err := getVersion(ctx, tx, key, func(data []byte) (int64, error) {
			var p model.Player
			if err := json.Unmarshal(data, &p); err != nil {
				return 0, err
			}
			return p.Version, nil
		})
		if err != nil {
			return err
		}
		if stored != player.Version {
			return model.ErrVersionConflict
		}

		player.Version++
		data, err := json.Marshal(player)
		if err != nil {
			player.Version--
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if errors.Is(err, redis.TxFailedErr) {
			player.Version--
			return model.ErrVersionConflict
		}
		return err
	}

	return s.client.Watch(ctx, txn, key)
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	key := sessionKey(session.ID)
	activeKey := activeSessionKey(session.PlayerID)

	txn := func(tx *redis.Tx) error {
		stored, err := getVersion(ctx, tx, key, func(data []byte) (int64, error) {
			var sess model.GameSession
			if err := json.Unmarshal(data, &sess); err != nil {
				return 0, err
			}
			return sess.Version, nil
		})
		if err != nil {
			return err
		}
		if stored != session.Version {
			return model.ErrVersionConflict
		}

		// Current index value decides whether this save must clear it
		activeID, err := tx.Get(ctx, activeKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		// At most one in_progress session per player; a save that would
		// create a second one is rejected, never silently indexed over
		if session.Status == model.SessionInProgress && activeID != "" && activeID != string(session.ID) {
			return model.ErrActiveSessionConflict
		}

		session.Version++
		data, err := json.Marshal(session)
		if err != nil {
			session.Version--
			return err
		}

		var ttl time.Duration
		if session.IsTerminal() {
			ttl = s.cfg.FinishedSessionTTL
		}

		// Session record and active index move in one transaction; this
		// is what keeps the one-active-session invariant race-free
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, ttl)
			if session.Status == model.SessionInProgress {
				pipe.Set(ctx, activeKey, string(session.ID), 0)
			} else if activeID == string(session.ID) {
				pipe.Del(ctx, activeKey)
			}
			return nil
		})
		if errors.Is(err, redis.TxFailedErr) {
			session.Version--
			return model.ErrVersionConflict
		}
		return err
	}

	return s.client.Watch(ctx, txn, key, activeKey)
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) FindActiveSessionByPlayer(ctx context.Context, playerID model.PlayerID) (*model.GameSession, error) {
	id, err := s.client.Get(ctx, activeSessionKey(playerID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	return s.GetSession(ctx, model.SessionID(id))
}

// getVersion reads the stored record's version inside a WATCH, treating a
// missing record as version 0
func getVersion(ctx context.Context, tx *redis.Tx, key string, extract func([]byte) (int64, error)) (int64, error) {
	data, err := tx.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return extract(data)
}
