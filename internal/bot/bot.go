package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"

	"github.com/handiism/muzbot/internal/audio"
	"github.com/handiism/muzbot/internal/cache"
	"github.com/handiism/muzbot/internal/config"
	"github.com/handiism/muzbot/internal/model"
	"github.com/handiism/muzbot/internal/vuxo"
)

// Service is the scraping client as the handlers see it: a connectable
// session with the three catalog operations. One Service instance
// serves one incoming chat request and is released when the request is
// done.
type Service interface {
	Connect()
	Disconnect()
	Search(ctx context.Context, keyword string) ([]model.Track, error)
	TopHits(ctx context.Context) ([]model.Track, error)
	AudioBytes(ctx context.Context, track model.Track) ([]byte, error)
}

// Bot is the conversation layer: it receives messages and button
// presses from Telegram, drives the scraping client, and sends text and
// audio back.
//
// Each incoming request gets its own Service instance (nothing is
// shared between concurrent requests); the result cache is the one
// shared structure and serializes its own mutations.
type Bot struct {
	tg     *tele.Bot
	store  *cache.Store
	tagger *audio.Tagger

	// newService builds the per-request scraping client. Swappable so
	// handler tests can substitute a fake.
	newService func() Service

	// flight collapses identical concurrent search queries into one
	// scrape.
	flight singleflight.Group

	requestTimeout time.Duration
}

// New creates the Bot, connects it to Telegram, and registers all
// handlers. It fails if the token is rejected by the Telegram API.
func New(settings *config.Settings) (*Bot, error) {
	pref := tele.Settings{
		Token:  settings.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			// Last-resort handler failures: log with context. The user
			// already got a generic notice from the handler itself.
			slog.Error("handler failed", "error", err)
		},
	}

	tg, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	b := &Bot{
		tg:             tg,
		store:          cache.New(settings.CacheTTL, settings.CacheSize),
		tagger:         audio.NewTagger(),
		newService:     func() Service { return vuxo.NewClient(nil) },
		requestTimeout: settings.RequestTimeout,
	}
	b.register()

	return b, nil
}

// register wires middleware and handlers. The bot serves private chats
// only.
func (b *Bot) register() {
	b.tg.Use(middleware.Recover(), privateOnly)

	b.tg.Handle("/start", b.onMenu)
	b.tg.Handle("/menu", b.onMenu)
	b.tg.Handle(&btnSearch, b.onSearchPrompt)
	b.tg.Handle(&btnTopHits, b.onTopHits)
	b.tg.Handle(&btnHelp, b.onHelp)
	b.tg.Handle(tele.OnText, b.onSearch)
	b.tg.Handle(&tele.Btn{Unique: trackUnique}, b.onTrack)
}

// Start begins long polling and blocks until Stop is called.
func (b *Bot) Start() {
	slog.Info("bot started")
	b.tg.Start()
}

// Stop shuts the poller down.
func (b *Bot) Stop() {
	b.tg.Stop()
	slog.Info("bot stopped")
}

// requestContext scopes one incoming request.
func (b *Bot) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), b.requestTimeout)
}

// privateOnly drops updates from group and channel chats.
func privateOnly(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if chat := c.Chat(); chat != nil && chat.Type != tele.ChatPrivate {
			return nil
		}
		return next(c)
	}
}
