package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hkmu/coursehub/internal/pkg/apperrors"
)

const keyPrefix = "session:"

// Session is the server-side state behind an opaque session cookie. Flash
// messages ride along and are drained on the next page render.
type Session struct {
	UserID   int64     `json:"userId"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Photo    string    `json:"photo"`
	IsAdmin  bool      `json:"isAdmin"`
	Flashes  []Flash   `json:"flashes,omitempty"`
	IssuedAt time.Time `json:"issuedAt"`
}

// Flash is a one-shot banner message for web pages.
type Flash struct {
	Kind    string `json:"kind"` // "success" or "error"
	Message string `json:"message"`
}

// Store keeps sessions in Redis, keyed by an opaque random id.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a session store with the given lifetime.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Create persists a new session and returns its opaque id.
func (s *Store) Create(ctx context.Context, sess *Session) (string, error) {
	sess.IssuedAt = time.Now()
	sid := uuid.NewString()
	if err := s.save(ctx, sid, sess); err != nil {
		return "", err
	}
	return sid, nil
}

// Get loads the session for sid. Returns apperrors.ErrSessionNotFound when
// the id is unknown or expired.
func (s *Store) Get(ctx context.Context, sid string) (*Session, error) {
	data, err := s.client.Get(ctx, keyPrefix+sid).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &sess, nil
}

// Delete invalidates a session server-side. The caller clears the cookie.
func (s *Store) Delete(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, keyPrefix+sid).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// AddFlash appends a flash message to the session.
func (s *Store) AddFlash(ctx context.Context, sid, kind, message string) error {
	sess, err := s.Get(ctx, sid)
	if err != nil {
		return err
	}
	sess.Flashes = append(sess.Flashes, Flash{Kind: kind, Message: message})
	return s.save(ctx, sid, sess)
}

// PopFlashes drains and returns the pending flash messages.
func (s *Store) PopFlashes(ctx context.Context, sid string) ([]Flash, error) {
	sess, err := s.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	flashes := sess.Flashes
	if len(flashes) == 0 {
		return nil, nil
	}
	sess.Flashes = nil
	if err := s.save(ctx, sid, sess); err != nil {
		return nil, err
	}
	return flashes, nil
}

func (s *Store) save(ctx context.Context, sid string, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sid, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}
