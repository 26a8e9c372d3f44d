package memstore

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-RentalService/internal/integrations/events"
)

// Recorder запоминает опубликованные события и бизнес-метрики
type Recorder struct {
	mu       sync.Mutex
	Events   []events.Event
	Counters map[string]int
}

func NewRecorder() *Recorder {
	return &Recorder{Counters: map[string]int{}}
}

func (r *Recorder) PublishWithGracefulDegradation(_ context.Context, event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, event)
}

func (r *Recorder) IncEvent(event string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Counters[event] += n
}

// Types возвращает типы опубликованных событий по порядку
func (r *Recorder) Types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]events.Type, 0, len(r.Events))
	for _, e := range r.Events {
		types = append(types, e.Type)
	}
	return types
}

// NopLogger логгер, который ничего не пишет
type NopLogger struct{}

func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
