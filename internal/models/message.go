package models

type MessageType int

const (
	User MessageType = iota
	Assistant
	System
	Program
	ToolCall
	ToolResult
)

// Message is one rendered row of a conversation.
type Message struct {
	Content string
	Type    MessageType
	// Set for ToolCall and ToolResult rows
	ToolCallID string
	ToolName   string
}
