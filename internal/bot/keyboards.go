package bot

import (
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v3"

	"github.com/handiism/muzbot/internal/model"
)

// Main menu reply buttons. Handle matches plain-text buttons by their
// label, so these double as routing endpoints.
var (
	btnSearch  = tele.Btn{Text: "🔍 Поиск"}
	btnTopHits = tele.Btn{Text: "🎵 Топ хиты"}
	btnHelp    = tele.Btn{Text: "❓ Помощь"}
)

// trackUnique is the callback namespace for result buttons.
const trackUnique = "track"

// keyboardLimit caps how many result rows one keyboard shows.
const keyboardLimit = 10

// mainMenu builds the persistent reply keyboard.
func mainMenu() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(btnSearch, btnTopHits),
		menu.Row(btnHelp),
	)
	return menu
}

// resultsKeyboard builds an inline keyboard for one cached result set,
// showing the first keyboardLimit tracks. Each button's callback
// payload is "get|{searchID}|{index}".
func resultsKeyboard(tracks []model.Track, searchID uint64) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	var rows []tele.Row
	for i, track := range tracks {
		if i == keyboardLimit {
			break
		}
		btn := markup.Data(
			fmt.Sprintf("%d. %s", i+1, track.Name),
			trackUnique,
			"get", strconv.FormatUint(searchID, 10), strconv.Itoa(i),
		)
		rows = append(rows, markup.Row(btn))
	}

	markup.Inline(rows...)
	return markup
}
