package storage

import (
	"sync"

	"github.com/aliskhannn/kuis-bot/internal/service"
)

// FlowStorage provides in-memory storage for quiz flows by chat ID.
type FlowStorage struct {
	mu       sync.RWMutex
	flows    map[int64]*service.QuizFlow
	messages map[int64]int
	newFlow  func() *service.QuizFlow
}

// NewFlowStorage creates a new FlowStorage that builds missing flows with newFlow.
func NewFlowStorage(newFlow func() *service.QuizFlow) *FlowStorage {
	return &FlowStorage{
		flows:    make(map[int64]*service.QuizFlow),
		messages: make(map[int64]int),
		newFlow:  newFlow,
	}
}

// GetOrCreate returns the flow for a chat, creating it on first use.
func (s *FlowStorage) GetOrCreate(chatID int64) *service.QuizFlow {
	s.mu.RLock()
	flow, ok := s.flows[chatID]
	s.mu.RUnlock()
	if ok {
		return flow
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if flow, ok = s.flows[chatID]; ok {
		return flow
	}

	flow = s.newFlow()
	s.flows[chatID] = flow
	return flow
}

// StoreMessageID remembers the message that currently shows the quiz screen.
func (s *FlowStorage) StoreMessageID(chatID int64, messageID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[chatID] = messageID
}

// GetMessageID returns the message that currently shows the quiz screen.
func (s *FlowStorage) GetMessageID(chatID int64) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.messages[chatID]
	return id, ok
}

// Delete removes the flow and screen message for a chat.
func (s *FlowStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, chatID)
	delete(s.messages, chatID)
}
