package llm

import "context"

// MockClient returns a canned structured reply. Used in local mode and
// tests so the transcript path works without GCP credentials.
type MockClient struct {
	Reply string
	Err   error
}

func NewMockClient() *MockClient {
	return &MockClient{Reply: defaultMockReply}
}

func (m *MockClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

const defaultMockReply = `1. Хронология
[контекст] [роль] обсуждение планов | утренний созвон с командой

2. Добыча и анализ
[роль] разбор задач | приоритизация бэклога

3. Фолоуп
[контекст] написать итоги | отправить заметки команде

4. Мета-анализ
День прошёл продуктивно.`
