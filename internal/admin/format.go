package admin

import (
	"fmt"
	"time"

	"github.com/thebar-catering/thebar-site/internal/i18n"
)

// Month names in the form they take inside a date ("14. května").
var monthNames = map[i18n.Locale][12]string{
	i18n.Czech:     {"ledna", "února", "března", "dubna", "května", "června", "července", "srpna", "září", "října", "listopadu", "prosince"},
	i18n.English:   {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	i18n.Russian:   {"января", "февраля", "марта", "апреля", "мая", "июня", "июля", "августа", "сентября", "октября", "ноября", "декабря"},
	i18n.Ukrainian: {"січня", "лютого", "березня", "квітня", "травня", "червня", "липня", "серпня", "вересня", "жовтня", "листопада", "грудня"},
}

// FormatDate renders t as a long local date and time for the locale.
func FormatDate(t time.Time, locale i18n.Locale) string {
	if t.IsZero() {
		return ""
	}
	t = t.Local()
	months, ok := monthNames[locale]
	if !ok {
		locale = i18n.Fallback
		months = monthNames[locale]
	}
	month := months[t.Month()-1]

	switch locale {
	case i18n.English:
		return fmt.Sprintf("%s %d, %d %s", month, t.Day(), t.Year(), t.Format("3:04 PM"))
	case i18n.Russian:
		return fmt.Sprintf("%d %s %d г. %s", t.Day(), month, t.Year(), t.Format("15:04"))
	case i18n.Ukrainian:
		return fmt.Sprintf("%d %s %d р. %s", t.Day(), month, t.Year(), t.Format("15:04"))
	default:
		return fmt.Sprintf("%d. %s %d %s", t.Day(), month, t.Year(), t.Format("15:04"))
	}
}
