// Package chatlog keeps the append-only conversation history between a
// user and a book's author persona, persisted as a whole collection in
// the durable key-value store.
package chatlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"bookchat/internal/kv"
	"bookchat/internal/util"
	"bookchat/pkg/domain"
)

// ErrNotFound reports that a session or message id did not resolve.
var ErrNotFound = errors.New("chatlog: not found")

const (
	SenderUser   = "user"
	SenderAuthor = "author"
)

// Message is one chat entry. Rating is only meaningful on author
// messages and stays mutable after creation.
type Message struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Sender     string    `json:"sender"`
	Timestamp  time.Time `json:"timestamp"`
	BookID     string    `json:"bookId"`
	AuthorName string    `json:"authorName"`
	Rating     *int      `json:"rating,omitempty"`
}

// Session is the ordered message log for one (user, book) pair.
type Session struct {
	ID         string    `json:"id"`
	BookID     string    `json:"bookId"`
	AuthorName string    `json:"authorName"`
	Title      string    `json:"title"`
	Messages   []Message `json:"messages"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewSessionID mints a session id.
func NewSessionID() string {
	return "chat_" + uuid.NewString()
}

// NewMessageID mints a message id from the current instant plus a
// random suffix, so two messages minted within the same millisecond
// never collide.
func NewMessageID(sender string) string {
	return fmt.Sprintf("msg_%d_%s_%s", time.Now().UnixMilli(), sender, util.ShortSuffix())
}

// Log owns the session collection. Mutations persist the whole
// collection before committing to memory, so a failed write leaves the
// in-memory log exactly as it was.
type Log struct {
	kv kv.Store

	mu       sync.RWMutex
	sessions map[string]*Session
}

// New restores the session collection from the store. A missing key is
// an empty log; a corrupt payload is an error so data is never silently
// overwritten.
func New(ctx context.Context, store kv.Store) (*Log, error) {
	l := &Log{kv: store, sessions: make(map[string]*Session)}
	raw, ok, err := store.Get(ctx, domain.StorageKeyChatSessions)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	if ok {
		var saved []Session
		if err := json.Unmarshal([]byte(raw), &saved); err != nil {
			return nil, fmt.Errorf("decode sessions: %w", err)
		}
		for i := range saved {
			s := saved[i]
			l.sessions[s.ID] = &s
		}
	}
	return l, nil
}

// Append adds messages to the session, creating it on first use with
// the book and author carried by the first message. UpdatedAt advances
// to the append instant; message timestamps are filled when zero and
// clamped so the sequence stays monotonic.
func (l *Log) Append(ctx context.Context, sessionID string, msgs ...Message) (Session, error) {
	if sessionID == "" {
		return Session{}, fmt.Errorf("chatlog: session id required")
	}
	if len(msgs) == 0 {
		return Session{}, fmt.Errorf("chatlog: no messages to append")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now().UTC()
	var updated Session
	if existing, ok := l.sessions[sessionID]; ok {
		updated = cloneSession(*existing)
	} else {
		updated = Session{
			ID:         sessionID,
			BookID:     msgs[0].BookID,
			AuthorName: msgs[0].AuthorName,
			Title:      fmt.Sprintf("与%s的对话", msgs[0].AuthorName),
			CreatedAt:  now,
		}
	}

	last := time.Time{}
	if n := len(updated.Messages); n > 0 {
		last = updated.Messages[n-1].Timestamp
	}
	for _, m := range msgs {
		if m.Timestamp.IsZero() {
			m.Timestamp = now
		}
		if m.Timestamp.Before(last) {
			m.Timestamp = last
		}
		last = m.Timestamp
		updated.Messages = append(updated.Messages, m)
	}
	updated.UpdatedAt = now

	if err := l.persistWith(ctx, updated); err != nil {
		return Session{}, err
	}
	l.sessions[sessionID] = &updated
	return cloneSession(updated), nil
}

// Rate sets the rating on one message. Missing session or message ids
// report ErrNotFound and leave the log untouched.
func (l *Log) Rate(ctx context.Context, sessionID, messageID string, rating int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, ok := l.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %q: %w", sessionID, ErrNotFound)
	}
	updated := cloneSession(*existing)
	found := false
	for i := range updated.Messages {
		if updated.Messages[i].ID == messageID {
			r := rating
			updated.Messages[i].Rating = &r
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("message %q: %w", messageID, ErrNotFound)
	}

	if err := l.persistWith(ctx, updated); err != nil {
		return err
	}
	l.sessions[sessionID] = &updated
	return nil
}

// Load returns the full session history.
func (l *Log) Load(sessionID string) (Session, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.sessions[sessionID]
	if !ok {
		return Session{}, false
	}
	return cloneSession(*s), true
}

// List returns all sessions, most recently updated first.
func (l *Log) List() []Session {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Session, 0, len(l.sessions))
	for _, s := range l.sessions {
		out = append(out, cloneSession(*s))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// persistWith serializes the collection as it would look with the
// updated session committed. Callers hold the write lock.
func (l *Log) persistWith(ctx context.Context, updated Session) error {
	all := make([]Session, 0, len(l.sessions)+1)
	replaced := false
	for _, s := range l.sessions {
		if s.ID == updated.ID {
			all = append(all, updated)
			replaced = true
			continue
		}
		all = append(all, *s)
	}
	if !replaced {
		all = append(all, updated)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	if err := l.kv.Set(ctx, domain.StorageKeyChatSessions, string(data)); err != nil {
		return fmt.Errorf("persist sessions: %w", err)
	}
	return nil
}

func cloneSession(s Session) Session {
	msgs := make([]Message, len(s.Messages))
	copy(msgs, s.Messages)
	for i := range msgs {
		if msgs[i].Rating != nil {
			r := *msgs[i].Rating
			msgs[i].Rating = &r
		}
	}
	s.Messages = msgs
	return s
}
