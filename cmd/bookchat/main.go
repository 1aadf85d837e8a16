package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"bookchat/internal/app"
	"bookchat/internal/catalog"
	"bookchat/internal/config"
	"bookchat/internal/identity"
	"bookchat/internal/kv"
	"bookchat/internal/util"
)

func main() {
	configPath := flag.String("config", config.ConfigPath, "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to load config: %v\n", err)
		os.Exit(1)
	}
	util.InitLogger(cfg.LogLevel)

	store, err := openStore(cfg)
	if err != nil {
		util.Fatal("failed to open storage", "backend", cfg.Storage, "err", err)
	}

	ctx := context.Background()
	core, err := app.New(ctx, app.Config{
		Store:            store,
		CatalogLoadDelay: cfg.CatalogLoadDelayDuration(),
		ReplyDelay:       cfg.ReplyDelayDuration(),
		AuthDelay:        cfg.AuthDelayDuration(),
		TokenSecret:      cfg.JWTSecret,
		SessionTTL:       cfg.SessionTTLDuration(),
	})
	if err != nil {
		util.Fatal("failed to init app", "err", err)
	}
	defer core.Close()

	if err := core.Init(ctx); err != nil {
		util.Fatal("failed to load catalog", "err", err)
	}

	runConsole(ctx, core)
}

func openStore(cfg config.FileConfig) (kv.Store, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return kv.NewMemoryStore(), nil
	case config.StorageFile:
		return kv.NewFileStore(cfg.DataDir)
	case config.StorageRedis:
		return kv.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword), nil
	case config.StoragePostgres:
		return kv.NewGormStore(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

const consoleHelp = `commands:
  books                     list the catalog
  search <text>             filter by title/author/tag substring
  top [n]                   top rated books
  login <email> <password>  sign in (demo: xiaoming@example.com / password)
  register <email> <name> <password>
  logout
  fav <bookId>              toggle a favorite
  favs                      list favorites
  chat <bookId> <text>      send a message to the book's author
  sessions                  list chat sessions
  rate <sessionId> <messageId> <1-5>
  quit`

// runConsole is the stand-in for the UI layer: a line-oriented loop
// driving the application object.
func runConsole(ctx context.Context, core *app.App) {
	fmt.Println("bookchat demo console. Type 'help' for commands.")
	scanner := bufio.NewScanner(os.Stdin)
	sessionByBook := make(map[string]string)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help":
			fmt.Println(consoleHelp)
		case "books":
			printBooks(core.Books())
		case "search":
			printBooks(core.Search(catalog.Filters{Query: strings.Join(args, " ")}))
		case "top":
			limit := 3
			if len(args) > 0 {
				if n, err := strconv.Atoi(args[0]); err == nil {
					limit = n
				}
			}
			printBooks(core.TopRated(limit))
		case "login":
			if len(args) != 2 {
				fmt.Println("usage: login <email> <password>")
				continue
			}
			user, _, err := core.Login(ctx, args[0], args[1])
			if err != nil {
				printErr(err)
				continue
			}
			fmt.Printf("welcome back, %s\n", user.Username)
		case "register":
			if len(args) != 3 {
				fmt.Println("usage: register <email> <name> <password>")
				continue
			}
			user, _, err := core.Register(ctx, args[0], args[1], args[2])
			if err != nil {
				printErr(err)
				continue
			}
			fmt.Printf("welcome, %s\n", user.Username)
		case "logout":
			if err := core.Logout(ctx); err != nil {
				printErr(err)
			}
		case "fav":
			if len(args) != 1 {
				fmt.Println("usage: fav <bookId>")
				continue
			}
			favs, err := core.ToggleFavorite(ctx, args[0])
			if err != nil {
				printErr(err)
				continue
			}
			fmt.Printf("favorites: %v\n", favs)
		case "favs":
			favs, err := core.Favorites(ctx)
			if err != nil {
				printErr(err)
				continue
			}
			fmt.Printf("favorites: %v\n", favs)
		case "chat":
			if len(args) < 2 {
				fmt.Println("usage: chat <bookId> <text>")
				continue
			}
			bookID := args[0]
			text := strings.Join(args[1:], " ")
			userMsg, authorMsg, err := core.SendMessage(ctx, sessionByBook[bookID], bookID, text)
			if err != nil {
				printErr(err)
				continue
			}
			if sessionByBook[bookID] == "" {
				for _, s := range core.Sessions() {
					if s.BookID == bookID {
						sessionByBook[bookID] = s.ID
						break
					}
				}
			}
			fmt.Printf("you: %s\n%s: %s\n", userMsg.Content, authorMsg.AuthorName, authorMsg.Content)
		case "sessions":
			for _, s := range core.Sessions() {
				fmt.Printf("%s  %s (%d messages, updated %s)\n",
					s.ID, s.Title, len(s.Messages), s.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
		case "rate":
			if len(args) != 3 {
				fmt.Println("usage: rate <sessionId> <messageId> <1-5>")
				continue
			}
			rating, err := strconv.Atoi(args[2])
			if err != nil {
				fmt.Println("rating must be a number")
				continue
			}
			if err := core.RateMessage(ctx, args[0], args[1], rating); err != nil {
				printErr(err)
				continue
			}
			fmt.Println("rated")
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q, try 'help'\n", cmd)
		}
	}
}

func printBooks(books []catalog.Book) {
	if len(books) == 0 {
		fmt.Println("no books")
		return
	}
	for _, b := range books {
		fmt.Printf("[%s] %s / %s (%s, %.1f, %d)\n",
			b.ID, b.Title, b.Author, b.Category, b.Rating, b.PublishYear)
	}
}

func printErr(err error) {
	switch {
	case errors.Is(err, identity.ErrNotAuthenticated):
		fmt.Println("please login first")
	case errors.Is(err, identity.ErrInvalidCredentials):
		fmt.Println("invalid email or password")
	default:
		fmt.Printf("error: %v\n", err)
	}
}
