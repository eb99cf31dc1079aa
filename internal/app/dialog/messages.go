package dialog

import (
	"fmt"
	"strings"

	"github.com/zhukovg/energolog/internal/domain"
)

// User-facing dialog strings.
const (
	msgGreeting = "Привет! Расскажи, что ты делал сегодня — по одной активности за сообщение. Когда закончишь, напиши «закончить»."

	msgNoActivities = "Ты не указал ни одной активности. Расскажи, что делал сегодня?"

	msgEnergyQuestion     = "Эта активность даёт или забирает энергию?"
	msgEnergyUnrecognized = "Не понял. Ответь «Даёт энергию», «Забирает энергию» или «Нейтрально»."

	msgRecorded = "Записал! Что ещё ты делал?"

	msgSaved = "Спасибо! Все данные сохранены. Теперь давай настроим время для ежедневных напоминаний. Напиши время в формате ЧЧ:ММ, например 21:30."

	msgSaveFailed = "Произошла ошибка при сохранении данных, часть записей могла не сохраниться. Пожалуйста, попробуй позже."

	msgAskTime = "Напиши время для ежедневного напоминания в формате ЧЧ:ММ, например 09:00."
	msgBadTime = "Неверный формат времени. Нужно ЧЧ:ММ, например 09:00."

	msgReminderSet    = "Готово! Буду напоминать каждый день в %02d:%02d."
	msgReminderFailed = "Данные сохранены, но напоминание настроить не удалось. Попробуй команду settime позже."

	msgCancelled = "Хорошо, отменил. Ничего не сохранено. Напиши start, чтобы начать заново."

	msgAnalyzeUnavailable = "Анализ транскриптов не настроен."
	msgAskTranscript      = "Пришли транскрипт одним сообщением, я разберу его на активности."
	msgTranscriptShort    = "Текст слишком короткий для транскрипта. Пришли более подробный текст."
	msgAnalysisFailed     = "Не получилось разобрать транскрипт. Давай введём активности вручную: что ты делал?"

	msgReviewRejected = "Хорошо, не сохраняю. Расскажи, что ты делал, по одной активности."
	msgReviewAgain    = "Ответь «Да», чтобы сохранить записи, или «Нет», чтобы ввести их вручную."

	msgIdle = "Напиши start, чтобы начать новый дневник."
)

// Quick-reply keyboards.
var (
	energyOptions = []string{labelPositive, labelNegative, labelNeutral}
	yesNoOptions  = []string{"Да", "Нет"}
)

func buildReviewPrompt(records []domain.ActivityRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Вот что я разобрал (%d):\n", len(records))
	for i, r := range records {
		fmt.Fprintf(&b, "%d. %s", i+1, r.Text)
		if len(r.Tags.Roles) > 0 || len(r.Tags.Skills) > 0 {
			all := append(append([]string(nil), r.Tags.Roles...), r.Tags.Skills...)
			fmt.Fprintf(&b, " [%s]", strings.Join(all, ", "))
		}
		b.WriteString("\n")
	}
	b.WriteString("\nСохранить эти записи? (Да/Нет)")
	return b.String()
}
