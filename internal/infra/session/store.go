package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix     = "agro:session:"
	userSessionKeyPrefix = "agro:user_sessions:"
	eventsChannel        = "agro:session_events"
)

// EventType tells subscribers what happened to a session
type EventType string

const (
	EventSet     EventType = "set"
	EventCleared EventType = "cleared"
)

// Session is the server side of a bearer token, keyed by the token id (jti)
type Session struct {
	TokenID   string    `json:"tokenId"`
	UserID    int64     `json:"userId"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Event is published on every session change
type Event struct {
	Type    EventType `json:"type"`
	UserID  int64     `json:"userId"`
	TokenID string    `json:"tokenId"`
}

// Store keeps sessions and one-time codes in redis
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// SetSession registers a session until its expiry
func (s *Store) SetSession(ctx context.Context, sess Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("%w: SetSession - session already expired", ErrStore)
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%w: SetSession - marshal: %v", ErrStore, err)
	}

	userKey := userSessionKeyPrefix + strconv.FormatInt(sess.UserID, 10)
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+sess.TokenID, payload, ttl)
	pipe.SAdd(ctx, userKey, sess.TokenID)
	pipe.Expire(ctx, userKey, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: SetSession - exec: %v", ErrStore, err)
	}

	return s.publish(ctx, Event{Type: EventSet, UserID: sess.UserID, TokenID: sess.TokenID})
}

// GetSession returns the live session of a token id
func (s *Store) GetSession(ctx context.Context, tokenID string) (*Session, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+tokenID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSession - get: %v", ErrStore, err)
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("%w: GetSession - unmarshal: %v", ErrStore, err)
	}
	return &sess, nil
}

// ClearSession revokes one token. Clearing an unknown token is not an error.
func (s *Store) ClearSession(ctx context.Context, tokenID string) error {
	sess, err := s.GetSession(ctx, tokenID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKeyPrefix+tokenID)
	pipe.SRem(ctx, userSessionKeyPrefix+strconv.FormatInt(sess.UserID, 10), tokenID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: ClearSession - exec: %v", ErrStore, err)
	}

	return s.publish(ctx, Event{Type: EventCleared, UserID: sess.UserID, TokenID: tokenID})
}

// ClearUserSessions revokes every token of a user (password change, account deletion)
func (s *Store) ClearUserSessions(ctx context.Context, userID int64) error {
	userKey := userSessionKeyPrefix + strconv.FormatInt(userID, 10)

	tokenIDs, err := s.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("%w: ClearUserSessions - members: %v", ErrStore, err)
	}

	keys := make([]string, 0, len(tokenIDs)+1)
	for _, id := range tokenIDs {
		keys = append(keys, sessionKeyPrefix+id)
	}
	keys = append(keys, userKey)

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: ClearUserSessions - del: %v", ErrStore, err)
	}

	return s.publish(ctx, Event{Type: EventCleared, UserID: userID})
}

// Subscribe streams session events until ctx is done. The channel is closed afterwards.
func (s *Store) Subscribe(ctx context.Context) (<-chan Event, error) {
	pubsub := s.client.Subscribe(ctx, eventsChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("%w: Subscribe - receive: %v", ErrStore, err)
	}

	events := make(chan Event)
	go func() {
		defer close(events)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}

func (s *Store) publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("%w: publish - marshal: %v", ErrStore, err)
	}
	if err := s.client.Publish(ctx, eventsChannel, payload).Err(); err != nil {
		return fmt.Errorf("%w: publish: %v", ErrStore, err)
	}
	return nil
}
