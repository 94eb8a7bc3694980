package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// sessionTTL bounds session lifetime; each append refreshes it.
	sessionTTL = 24 * time.Hour

	// maxSessionMessages caps stored history per session.
	maxSessionMessages = 20
)

// Message represents one turn of a chat conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionStore keeps per-session conversation history in Redis. Sessions are
// created on first append and evicted by TTL.
type SessionStore struct {
	redis *redis.Client
}

// NewSessionStore creates a new SessionStore instance
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{redis: client}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("chat:session:%s", sessionID)
}

// History returns the stored conversation for the session, oldest first.
// An unknown session yields an empty history.
func (s *SessionStore) History(ctx context.Context, sessionID string) ([]Message, error) {
	data, err := s.redis.Get(ctx, sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return []Message{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}

	var history []Message
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", sessionID, err)
	}
	return history, nil
}

// Append adds messages to the session history, trimming to the most recent
// maxSessionMessages and refreshing the TTL.
func (s *SessionStore) Append(ctx context.Context, sessionID string, messages ...Message) error {
	history, err := s.History(ctx, sessionID)
	if err != nil {
		return err
	}

	history = append(history, messages...)
	if len(history) > maxSessionMessages {
		history = history[len(history)-maxSessionMessages:]
	}

	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", sessionID, err)
	}
	if err := s.redis.Set(ctx, sessionKey(sessionID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", sessionID, err)
	}
	return nil
}
