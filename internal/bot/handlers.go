package bot

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	tele "gopkg.in/telebot.v3"

	"github.com/handiism/muzbot/internal/model"
)

// User-facing replies. Failures stay short and generic; details go to
// the log only.
const (
	msgMenu           = "🎵 Музыкальный бот - главное меню"
	msgSearchPrompt   = "Введите название песни или исполнителя:"
	msgHelp           = "Отправьте название песни или исполнителя, и я найду трек.\nКнопка «🎵 Топ хиты» покажет популярное прямо сейчас."
	msgQueryTooShort  = "❌ Слишком короткий запрос"
	msgQueryTooLong   = "❌ Слишком длинный запрос"
	msgNothingFound   = "❌ Ничего не найдено"
	msgSearchFailed   = "❌ Ошибка при поиске"
	msgTopHitsFailed  = "❌ Не удалось загрузить топ хиты"
	msgDownloadFailed = "❌ Ошибка при загрузке трека"
	msgResultsStale   = "❌ Результаты поиска устарели"
	msgDownloading    = "⬇️ Скачиваю..."
)

// attachmentFieldLimit is the transport's cap on audio title and
// performer strings.
const attachmentFieldLimit = 64

func (b *Bot) onMenu(c tele.Context) error {
	logAction(c, "menu")
	return c.Send(msgMenu, mainMenu())
}

func (b *Bot) onSearchPrompt(c tele.Context) error {
	return c.Send(msgSearchPrompt)
}

func (b *Bot) onHelp(c tele.Context) error {
	return c.Send(msgHelp)
}

func (b *Bot) onTopHits(c tele.Context) error {
	logAction(c, "top hits")

	ctx, cancel := b.requestContext()
	defer cancel()

	svc := b.newService()
	svc.Connect()
	defer svc.Disconnect()

	tracks, err := svc.TopHits(ctx)
	if err != nil {
		slog.Error("top hits failed", "error", err)
		return c.Send(msgTopHitsFailed)
	}
	if len(tracks) == 0 {
		return c.Send(msgTopHitsFailed)
	}

	searchID := b.store.Put(tracks)
	return c.Send("🔥 Топ хиты:", resultsKeyboard(tracks, searchID))
}

func (b *Bot) onSearch(c tele.Context) error {
	query := strings.TrimSpace(c.Text())

	switch {
	case utf8.RuneCountInString(query) < 2:
		return c.Send(msgQueryTooShort)
	case utf8.RuneCountInString(query) > 100:
		return c.Send(msgQueryTooLong)
	}

	logAction(c, "search "+query)
	if err := c.Send(fmt.Sprintf("🔍 Ищу: %s...", query)); err != nil {
		return err
	}

	ctx, cancel := b.requestContext()
	defer cancel()

	// Identical queries arriving together share one scrape.
	result, err, _ := b.flight.Do(query, func() (any, error) {
		svc := b.newService()
		svc.Connect()
		defer svc.Disconnect()
		return svc.Search(ctx, query)
	})
	if err != nil {
		slog.Error("search failed", "query", query, "error", err)
		return c.Send(msgSearchFailed)
	}

	tracks := result.([]model.Track)
	if len(tracks) == 0 {
		return c.Send(msgNothingFound)
	}

	searchID := b.store.Put(tracks)
	return c.Send(
		fmt.Sprintf("🎵 Найдено %d треков по запросу: %s", len(tracks), query),
		resultsKeyboard(tracks, searchID),
	)
}

func (b *Bot) onTrack(c tele.Context) error {
	track, ok := b.trackFromCallback(c.Args())
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: msgResultsStale})
	}

	logAction(c, "download "+track.Name)
	if err := c.Respond(&tele.CallbackResponse{Text: msgDownloading}); err != nil {
		return err
	}

	ctx, cancel := b.requestContext()
	defer cancel()

	svc := b.newService()
	svc.Connect()
	defer svc.Disconnect()

	payload, err := svc.AudioBytes(ctx, track)
	if err != nil {
		slog.Error("download failed", "track", track.Name, "error", err)
		return c.Send(msgDownloadFailed)
	}

	if tagged, err := b.tagger.Tag(payload, track); err != nil {
		slog.Warn("tagging failed, sending raw payload", "track", track.Name, "error", err)
	} else {
		payload = tagged
	}

	return c.Send(&tele.Audio{
		File:      tele.FromReader(bytes.NewReader(payload)),
		Title:     truncate(track.Title, attachmentFieldLimit),
		Performer: truncate(track.Performer, attachmentFieldLimit),
		Caption:   "🎵 " + track.Name,
		FileName:  track.FileName(),
	})
}

// trackFromCallback resolves a "get|{searchID}|{index}" callback
// payload against the result cache.
func (b *Bot) trackFromCallback(args []string) (model.Track, bool) {
	if len(args) != 3 || args[0] != "get" {
		return model.Track{}, false
	}

	searchID, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return model.Track{}, false
	}
	index, err := strconv.Atoi(args[2])
	if err != nil {
		return model.Track{}, false
	}

	tracks, ok := b.store.Get(searchID)
	if !ok || index < 0 || index >= len(tracks) {
		return model.Track{}, false
	}
	return tracks[index], true
}

// truncate cuts s to at most limit runes.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

// logAction records who did what, for operators only.
func logAction(c tele.Context, action string) {
	if sender := c.Sender(); sender != nil {
		slog.Info("user action", "user", sender.ID, "action", action)
		return
	}
	slog.Info("user action", "action", action)
}
