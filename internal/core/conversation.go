package core

import (
	"sync"

	"github.com/Rorical/RoriFunc/internal/models"
	"github.com/sashabaranov/go-openai"
)

// Conversation is the append-only message log of one chat. Insertion order is
// conversation order.
type Conversation struct {
	mu       sync.RWMutex
	messages []openai.ChatCompletionMessage
}

// NewConversation starts a log, seeded with a system message when systemPrompt is not empty.
func NewConversation(systemPrompt string) *Conversation {
	c := &Conversation{messages: make([]openai.ChatCompletionMessage, 0)}
	if systemPrompt != "" {
		c.messages = append(c.messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	return c
}

// ConversationFrom seeds a log with messages received from elsewhere.
func ConversationFrom(msgs []openai.ChatCompletionMessage) *Conversation {
	c := &Conversation{messages: make([]openai.ChatCompletionMessage, len(msgs))}
	copy(c.messages, msgs)
	return c
}

func (c *Conversation) Append(msgs ...openai.ChatCompletionMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msgs...)
}

// Messages returns a copy safe to hand to a request.
func (c *Conversation) Messages() []openai.ChatCompletionMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]openai.ChatCompletionMessage, len(c.messages))
	copy(result, c.messages)
	return result
}

func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// Last returns the newest message, if any.
func (c *Conversation) Last() (openai.ChatCompletionMessage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.messages) == 0 {
		return openai.ChatCompletionMessage{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// AugmentSystemPrompt extends the seed system message. It only runs before the
// first user message, so the log is still append-only from the model's view.
func (c *Conversation) AugmentSystemPrompt(extra string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) != 1 || c.messages[0].Role != openai.ChatMessageRoleSystem {
		return false
	}
	c.messages[0].Content += extra
	return true
}

// DisplayMessages converts the log into UI rows.
func (c *Conversation) DisplayMessages() []models.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []models.Message
	for _, msg := range c.messages {
		switch msg.Role {
		case openai.ChatMessageRoleSystem:
			result = append(result, models.Message{Content: msg.Content, Type: models.System})
		case openai.ChatMessageRoleUser:
			result = append(result, models.Message{Content: msg.Content, Type: models.User})
		case openai.ChatMessageRoleAssistant:
			if msg.Content != "" {
				result = append(result, models.Message{Content: msg.Content, Type: models.Assistant})
			}
			for _, call := range msg.ToolCalls {
				result = append(result, models.Message{
					Content:    call.Function.Arguments,
					Type:       models.ToolCall,
					ToolCallID: call.ID,
					ToolName:   call.Function.Name,
				})
			}
		case openai.ChatMessageRoleTool:
			name := msg.Name
			if name == "" {
				name = toolNameFor(c.messages, msg.ToolCallID)
			}
			result = append(result, models.Message{
				Content:    msg.Content,
				Type:       models.ToolResult,
				ToolCallID: msg.ToolCallID,
				ToolName:   name,
			})
		}
	}
	return result
}

func toolNameFor(history []openai.ChatCompletionMessage, toolCallID string) string {
	for _, msg := range history {
		if msg.Role != openai.ChatMessageRoleAssistant {
			continue
		}
		for _, call := range msg.ToolCalls {
			if call.ID == toolCallID {
				return call.Function.Name
			}
		}
	}
	return "unknown"
}
