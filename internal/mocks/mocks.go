// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mad2moi/telegram-bot/internal/botapp/commands"
	"github.com/mad2moi/telegram-bot/internal/core"
	"github.com/mad2moi/telegram-bot/internal/history"
)

// Compile-time checks to ensure mocks implement their interfaces.
var (
	_ commands.Sender = (*MockSender)(nil)
	_ core.Completer  = (*MockLLM)(nil)
)

// MockSender records every call the handlers make to Telegram.
type MockSender struct {
	mu        sync.Mutex
	messages  []*bot.SendMessageParams
	callbacks []*bot.AnswerCallbackQueryParams
	actions   []*bot.SendChatActionParams
	nextID    int

	// SendErr, when set, is returned by SendMessage.
	SendErr error
}

// NewMockSender creates a new mock sender.
func NewMockSender() *MockSender {
	return &MockSender{}
}

// SendMessage implements commands.Sender.
func (m *MockSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, params)
	if m.SendErr != nil {
		return nil, m.SendErr
	}
	m.nextID++
	return &models.Message{ID: m.nextID, Text: params.Text}, nil
}

// AnswerCallbackQuery implements commands.Sender.
func (m *MockSender) AnswerCallbackQuery(_ context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, params)
	return true, nil
}

// SendChatAction implements commands.Sender.
func (m *MockSender) SendChatAction(_ context.Context, params *bot.SendChatActionParams) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, params)
	return true, nil
}

// Messages returns the messages sent so far, failed ones included.
func (m *MockSender) Messages() []*bot.SendMessageParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*bot.SendMessageParams, len(m.messages))
	copy(out, m.messages)
	return out
}

// Callbacks returns the answered callback queries.
func (m *MockSender) Callbacks() []*bot.AnswerCallbackQueryParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*bot.AnswerCallbackQueryParams, len(m.callbacks))
	copy(out, m.callbacks)
	return out
}

// Actions returns the chat actions sent.
func (m *MockSender) Actions() []*bot.SendChatActionParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*bot.SendChatActionParams, len(m.actions))
	copy(out, m.actions)
	return out
}

// Reset clears recorded calls.
func (m *MockSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
	m.callbacks = nil
	m.actions = nil
}

// LLMCall records a call to the language model.
type LLMCall struct {
	Persona  string
	Turns    []history.Turn
	UserText string
}

// MockLLM is a test implementation of core.Completer.
type MockLLM struct {
	mu    sync.Mutex
	calls []LLMCall

	// Answer is returned when Err is nil.
	Answer string
	Err    error
}

// NewMockLLM creates a mock answering answer.
func NewMockLLM(answer string) *MockLLM {
	return &MockLLM{Answer: answer}
}

// Complete implements core.Completer.
func (m *MockLLM) Complete(_ context.Context, persona string, turns []history.Turn, userText string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, LLMCall{Persona: persona, Turns: turns, UserText: userText})
	if m.Err != nil {
		return "", m.Err
	}
	return m.Answer, nil
}

// Calls returns the recorded calls.
func (m *MockLLM) Calls() []LLMCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LLMCall, len(m.calls))
	copy(out, m.calls)
	return out
}
