// Package app wires the catalog, favorites, chat log, identity and
// reply provider behind one object with an explicit lifecycle. It
// replaces the ambient module-level state the UI would otherwise reach
// for: construct, Init, use, Close.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bookchat/internal/catalog"
	"bookchat/internal/chatlog"
	"bookchat/internal/favorites"
	"bookchat/internal/identity"
	"bookchat/internal/kv"
	"bookchat/internal/reply"
	"bookchat/pkg/domain"
)

// Config holds runtime configuration for the core application.
type Config struct {
	Store     kv.Store
	Fetcher   catalog.Fetcher
	Responder reply.Responder
	Logger    *slog.Logger

	CatalogLoadDelay time.Duration
	ReplyDelay       time.Duration
	AuthDelay        time.Duration
	TokenSecret      string
	SessionTTL       time.Duration
}

// App is the application service consumed by the UI layer.
type App struct {
	log       *slog.Logger
	store     kv.Store
	catalog   *catalog.Store
	favorites *favorites.Store
	chats     *chatlog.Log
	auth      *identity.Service
	responder reply.Responder
}

// New constructs the application. The kv store is required; fetcher and
// responder default to the simulated implementations.
func New(ctx context.Context, cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("app: kv store required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = catalog.SeedFetcher{Delay: cfg.CatalogLoadDelay}
	}
	responder := cfg.Responder
	if responder == nil {
		responder = reply.NewCanned(cfg.ReplyDelay)
	}

	auth, err := identity.NewService(ctx, cfg.Store, identity.Config{
		Delay:       cfg.AuthDelay,
		TokenSecret: cfg.TokenSecret,
		TokenTTL:    cfg.SessionTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("init identity: %w", err)
	}
	chats, err := chatlog.New(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("init chat log: %w", err)
	}

	return &App{
		log:       logger,
		store:     cfg.Store,
		catalog:   catalog.NewStore(fetcher),
		favorites: favorites.NewStore(cfg.Store),
		chats:     chats,
		auth:      auth,
		responder: responder,
	}, nil
}

// Init loads the catalog. Safe to call again after a failed load.
func (a *App) Init(ctx context.Context) error {
	if err := a.catalog.Load(ctx); err != nil {
		a.log.Error("catalog load failed", "err", err)
		return err
	}
	a.log.Info("catalog loaded", "books", len(a.catalog.Books()))
	return nil
}

// Close releases the durable store.
func (a *App) Close() error {
	return a.store.Close()
}

// Catalog queries.

func (a *App) Books() []catalog.Book                        { return a.catalog.Books() }
func (a *App) Search(f catalog.Filters) []catalog.Book      { return a.catalog.Search(f) }
func (a *App) ByCategory(c catalog.Category) []catalog.Book { return a.catalog.ByCategory(c) }
func (a *App) TopRated(limit int) []catalog.Book            { return a.catalog.TopRated(limit) }
func (a *App) GetBook(id string) (catalog.Book, bool)       { return a.catalog.GetByID(id) }

// Identity.

func (a *App) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	return a.auth.Login(ctx, email, password)
}

func (a *App) Register(ctx context.Context, email, username, password string) (domain.User, string, error) {
	return a.auth.Register(ctx, email, username, password)
}

func (a *App) Logout(ctx context.Context) error { return a.auth.Logout(ctx) }

func (a *App) CurrentUser() (domain.User, bool) { return a.auth.Current() }

func (a *App) UpdateProfile(ctx context.Context, userID string, changes identity.Changes) (domain.User, error) {
	return a.auth.Update(ctx, userID, changes)
}

// Favorites.

// ToggleFavorite flips membership for the current user and refreshes
// the identity view so both read the same record afterwards.
func (a *App) ToggleFavorite(ctx context.Context, bookID string) ([]string, error) {
	user, ok := a.auth.Current()
	if !ok {
		return nil, identity.ErrNotAuthenticated
	}
	if _, found := a.catalog.GetByID(bookID); !found {
		return nil, fmt.Errorf("%w: %s", ErrBookNotFound, bookID)
	}
	updated, err := a.favorites.Toggle(ctx, user.ID, bookID)
	if err != nil {
		return nil, err
	}
	if _, err := a.auth.Refresh(ctx); err != nil {
		a.log.Warn("identity refresh after toggle failed", "err", err)
	}
	return updated, nil
}

func (a *App) IsFavorite(ctx context.Context, bookID string) bool {
	user, ok := a.auth.Current()
	if !ok {
		return false
	}
	return a.favorites.IsFavorite(ctx, user.ID, bookID)
}

func (a *App) Favorites(ctx context.Context) ([]string, error) {
	user, ok := a.auth.Current()
	if !ok {
		return nil, identity.ErrNotAuthenticated
	}
	return a.favorites.List(ctx, user.ID)
}

// Chat.

// SendMessage appends the user's message, asks the responder for the
// author reply and appends that too. If the caller's context dies while
// the reply is pending, the reply is discarded and the session keeps
// only the user message; a stale completion never mutates the log.
func (a *App) SendMessage(ctx context.Context, sessionID, bookID, content string) (chatlog.Message, chatlog.Message, error) {
	if _, ok := a.auth.Current(); !ok {
		return chatlog.Message{}, chatlog.Message{}, identity.ErrNotAuthenticated
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return chatlog.Message{}, chatlog.Message{}, ErrEmptyMessage
	}
	book, ok := a.catalog.GetByID(bookID)
	if !ok {
		return chatlog.Message{}, chatlog.Message{}, fmt.Errorf("%w: %s", ErrBookNotFound, bookID)
	}
	if sessionID == "" {
		sessionID = chatlog.NewSessionID()
	}

	userMsg := chatlog.Message{
		ID:         chatlog.NewMessageID(chatlog.SenderUser),
		Content:    content,
		Sender:     chatlog.SenderUser,
		BookID:     book.ID,
		AuthorName: book.Author,
	}
	session, err := a.chats.Append(ctx, sessionID, userMsg)
	if err != nil {
		return chatlog.Message{}, chatlog.Message{}, err
	}
	userMsg = session.Messages[len(session.Messages)-1]

	text, err := a.responder.Reply(ctx, book.Author, content)
	if err != nil {
		// Abandoned wait: the caller is gone, drop the reply.
		a.log.Debug("reply discarded", "session", sessionID, "err", err)
		return userMsg, chatlog.Message{}, err
	}
	if ctx.Err() != nil {
		a.log.Debug("reply discarded after completion", "session", sessionID)
		return userMsg, chatlog.Message{}, ctx.Err()
	}

	authorMsg := chatlog.Message{
		ID:         chatlog.NewMessageID(chatlog.SenderAuthor),
		Content:    text,
		Sender:     chatlog.SenderAuthor,
		BookID:     book.ID,
		AuthorName: book.Author,
	}
	if _, err := a.chats.Append(ctx, sessionID, authorMsg); err != nil {
		return userMsg, chatlog.Message{}, err
	}
	return userMsg, authorMsg, nil
}

func (a *App) RateMessage(ctx context.Context, sessionID, messageID string, rating int) error {
	return a.chats.Rate(ctx, sessionID, messageID, rating)
}

func (a *App) LoadSession(sessionID string) (chatlog.Session, bool) {
	return a.chats.Load(sessionID)
}

func (a *App) Sessions() []chatlog.Session { return a.chats.List() }
