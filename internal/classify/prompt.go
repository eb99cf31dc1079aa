package classify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zhukovg/energolog/internal/taxonomy"
)

const systemPrompt = `Ты помощник для анализа транскриптов и определения активностей.
Твоя задача - анализировать текст на основе предоставленного справочника категорий и создавать структурированный конспект.

Формат вывода должен быть строго в следующем виде:
1. Хронология
2. Добыча и анализ (с тегами)
3. Фолоуп
4. Мета-анализ

Каждая активность должна быть размечена тегами в формате:
[контекст] [роль] действие | подробности
[цвет] навык | где применялся

Используй только теги из справочника.`

const analysisPromptFormat = `%s

Проанализируй следующий текст, используя указанный выше справочник категорий:

%s

Создай структурированный конспект, следуя формату из системного промпта.`

// buildAnalysisPrompt embeds the serialized taxonomy and the transcript
// into the user prompt.
func buildAnalysisPrompt(cats []taxonomy.NamedCategory, transcript string) string {
	return fmt.Sprintf(analysisPromptFormat, serializeTaxonomy(cats), transcript)
}

// serializeTaxonomy renders the dictionary the way the analysis prompt
// expects: one section per category, grouped categories indented.
func serializeTaxonomy(cats []taxonomy.NamedCategory) string {
	var b strings.Builder
	b.WriteString("СПРАВОЧНИК КАТЕГОРИЙ:\n")
	for _, cat := range cats {
		b.WriteString("\n")
		b.WriteString(cat.Name)
		b.WriteString(":\n")
		if cat.Groups == nil {
			for _, tag := range cat.Tags {
				fmt.Fprintf(&b, "- %s\n", tag)
			}
			continue
		}
		groups := make([]string, 0, len(cat.Groups))
		for g := range cat.Groups {
			groups = append(groups, g)
		}
		sort.Strings(groups)
		for _, g := range groups {
			fmt.Fprintf(&b, "  %s:\n", g)
			for _, tag := range cat.Groups[g] {
				fmt.Fprintf(&b, "  - %s\n", tag)
			}
		}
	}
	return b.String()
}
