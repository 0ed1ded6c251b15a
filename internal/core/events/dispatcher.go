package events

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"recipe-recommender/internal/core/domain"
	"recipe-recommender/internal/infrastructure/monitoring"
	"recipe-recommender/internal/pkg/common"
)

// 佇列錯誤
var (
	ErrQueueFull = errors.New("event queue is full")
	ErrClosed    = errors.New("event dispatcher is closed")
)

// Config 事件佇列設定
type Config struct {
	Workers      int
	QueueSize    int
	WriteTimeout time.Duration
}

// Status 佇列狀態
type Status struct {
	QueueLength    int   `json:"queue_length"`
	MaxQueueSize   int   `json:"max_queue_size"`
	Workers        int   `json:"workers"`
	ProcessedCount int64 `json:"processed_count"`
	FailedCount    int64 `json:"failed_count"`
}

// Dispatcher 非同步事件寫入器，以固定數量的 worker 消化有界佇列
type Dispatcher struct {
	cfg       Config
	sink      domain.EventRecorder
	queue     chan []domain.InteractionEvent
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	processed int64
	failed    int64
}

// NewDispatcher 建立並啟動事件 worker
func NewDispatcher(sink domain.EventRecorder, cfg Config) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 3 * time.Second
	}

	d := &Dispatcher{
		cfg:   cfg,
		sink:  sink,
		queue: make(chan []domain.InteractionEvent, cfg.QueueSize),
	}
	for i := 0; i < cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// RecordEvents 將事件放入佇列後立即返回；佇列已滿時回傳 ErrQueueFull
func (d *Dispatcher) RecordEvents(ctx context.Context, events []domain.InteractionEvent) error {
	if len(events) == 0 {
		return nil
	}
	batch := make([]domain.InteractionEvent, len(events))
	copy(batch, events)

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}

	select {
	case d.queue <- batch:
		monitoring.SetEventQueueLength(len(d.queue))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for batch := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.WriteTimeout)
		err := d.sink.RecordEvents(ctx, batch)
		cancel()

		if err != nil {
			atomic.AddInt64(&d.failed, 1)
			monitoring.RecordEventWriteFailure()
			common.LogError("Failed to write interaction events",
				zap.Int("count", len(batch)),
				zap.Error(err),
			)
		} else {
			atomic.AddInt64(&d.processed, int64(len(batch)))
		}
		monitoring.SetEventQueueLength(len(d.queue))
	}
}

// Status 獲取佇列狀態
func (d *Dispatcher) Status() Status {
	return Status{
		QueueLength:    len(d.queue),
		MaxQueueSize:   d.cfg.QueueSize,
		Workers:        d.cfg.Workers,
		ProcessedCount: atomic.LoadInt64(&d.processed),
		FailedCount:    atomic.LoadInt64(&d.failed),
	}
}

// Close 停止接受新事件並等待佇列寫完
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}
