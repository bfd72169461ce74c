package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mizuki-dev/task-manager-api/internal/constants"
	"github.com/mizuki-dev/task-manager-api/internal/models"
	"github.com/sashabaranov/go-openai"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be drafted from AI output")
)

type AIService struct {
	client *openai.Client
}

// DraftedTask is a task suggestion extracted from free text. It is only
// a draft; persisting it still flows through the gated task façade.
type DraftedTask struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    models.TaskCategory `json:"category"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// DraftTasksFromText analyzes text and extracts task drafts using OpenAI GPT
func (s *AIService) DraftTasksFromText(ctx context.Context, text string) ([]DraftedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are a task extraction assistant. Extract concrete tasks from the text below.

Text:
%s

Respond with a JSON array of extracted tasks:
[
  {
    "title": "short task title",
    "description": "detailed task description",
    "category": "one of: work, personal, shopping, health, finance, other"
  }
]

Respond with the JSON array only, no surrounding text.`, text)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call OpenAI API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var drafts []DraftedTask
	if err := json.Unmarshal([]byte(content), &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	return drafts, nil
}

// DraftTasks validates AI output before it is offered to the caller.
func (s *TaskService) DraftTasks(ctx context.Context, ai *AIService, text string) ([]DraftedTask, error) {
	if ai == nil {
		return nil, ErrAIServiceNotConfigured
	}

	drafts, err := ai.DraftTasksFromText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to draft tasks: %w", err)
	}

	if len(drafts) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(drafts) > constants.MaxAIGeneratedTasks {
		return nil, fmt.Errorf("AI drafted too many tasks (max %d)", constants.MaxAIGeneratedTasks)
	}

	valid := make([]DraftedTask, 0, len(drafts))
	for _, draft := range drafts {
		if strings.TrimSpace(draft.Title) == "" {
			continue
		}
		if !draft.Category.IsValid() {
			draft.Category = models.TaskCategoryOther
		}
		valid = append(valid, draft)
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidTasks
	}

	return valid, nil
}
