// Package session stores live-chat session identities for resumption.
// It plays the role browser local storage played for the chat widget: a chat
// id plus the visitor's name survive reloads until the TTL lapses or the
// visitor ends the chat.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when no session identity exists for an id.
var ErrNotFound = errors.New("chat session not found")

// Identity is the resumable part of a chat session.
type Identity struct {
	ChatID string `json:"chat_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Store persists session identities in Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore builds a store with the given resumption TTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func sessionKey(chatID string) string {
	return "chat:session:" + chatID
}

// Save writes the identity, resetting its TTL.
func (s *Store) Save(ctx context.Context, id Identity) error {
	payload, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(id.ChatID), payload, s.ttl).Err()
}

// Get loads the identity for a chat id.
func (s *Store) Get(ctx context.Context, chatID string) (*Identity, error) {
	raw, err := s.client.Get(ctx, sessionKey(chatID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var id Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// Delete removes the identity. The request document and its messages remain.
func (s *Store) Delete(ctx context.Context, chatID string) error {
	return s.client.Del(ctx, sessionKey(chatID)).Err()
}
