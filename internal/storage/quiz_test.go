package storage

import (
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/kuis-bot/internal/service"
)

func newStorage(created *int) *FlowStorage {
	var mu sync.Mutex
	return NewFlowStorage(func() *service.QuizFlow {
		mu.Lock()
		*created++
		mu.Unlock()
		return service.NewQuizFlow(nil, zap.NewNop())
	})
}

func TestGetOrCreate_ReusesFlowPerChat(t *testing.T) {
	var created int
	s := newStorage(&created)

	a := s.GetOrCreate(1)
	b := s.GetOrCreate(1)
	c := s.GetOrCreate(2)

	if a != b {
		t.Error("expected the same flow for the same chat")
	}
	if a == c {
		t.Error("expected different flows for different chats")
	}
	if created != 2 {
		t.Errorf("expected 2 flows created, got %d", created)
	}
}

func TestGetOrCreate_Concurrent(t *testing.T) {
	var created int
	s := newStorage(&created)

	var wg sync.WaitGroup
	flows := make([]*service.QuizFlow, 20)
	for i := range flows {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			flows[i] = s.GetOrCreate(42)
		}(i)
	}
	wg.Wait()

	for _, f := range flows {
		if f != flows[0] {
			t.Fatal("expected a single flow for concurrent callers")
		}
	}
	if created != 1 {
		t.Errorf("expected 1 flow created, got %d", created)
	}
}

func TestMessageIDAndDelete(t *testing.T) {
	var created int
	s := newStorage(&created)

	first := s.GetOrCreate(7)
	s.StoreMessageID(7, 100)

	if id, ok := s.GetMessageID(7); !ok || id != 100 {
		t.Errorf("expected message 100, got %d (ok=%v)", id, ok)
	}

	s.Delete(7)

	if s.GetOrCreate(7) == first || created != 2 {
		t.Error("expected flow to be deleted and recreated")
	}
	if _, ok := s.GetMessageID(7); ok {
		t.Error("expected message id to be deleted")
	}
}
