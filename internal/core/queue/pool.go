package queue

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"pantry-planner/internal/infrastructure/config"
	"pantry-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Task 佇列中的一件工作
type Task = func()

// Status 隊列狀態
type Status struct {
	QueueLength    int   `json:"queue_length"`
	ProcessedCount int64 `json:"processed_count"`
	FailedCount    int64 `json:"failed_count"`
	MaxQueueSize   int   `json:"max_queue_size"`
	Workers        int   `json:"workers"`
}

// Pool 固定數量 worker 的工作池
type Pool struct {
	workers   int
	maxSize   int
	tasks     chan Task
	done      chan struct{}
	processed int64
	failed    int64

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewPool 建立並啟動工作池
func NewPool(cfg config.QueueConfig) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = workers
	}

	p := &Pool{
		workers: workers,
		maxSize: maxSize,
		tasks:   make(chan Task, maxSize),
		done:    make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	common.LogInfo("工作池已啟動",
		zap.Int("workers", workers),
		zap.Int("max_queue_size", maxSize),
	)
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case task := <-p.tasks:
			p.run(id, task)
		case <-p.done:
			// 關閉後把已排入的工作做完
			for {
				select {
				case task := <-p.tasks:
					p.run(id, task)
				default:
					return
				}
			}
		}
	}
}

func (p *Pool) run(id int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			atomic.AddInt64(&p.failed, 1)
			common.LogError("工作執行發生 panic",
				zap.Int("worker", id),
				zap.Any("panic", r),
			)
		}
	}()
	task()
	atomic.AddInt64(&p.processed, 1)
}

// Submit 將工作排入佇列；佇列已滿時不等待
func (p *Pool) Submit(ctx context.Context, task Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return common.ErrQueueClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return common.ErrQueueFull.Wrap(fmt.Errorf("queue length %d", p.maxSize))
	}
}

// Status 取得隊列狀態
func (p *Pool) Status() *Status {
	return &Status{
		QueueLength:    len(p.tasks),
		ProcessedCount: atomic.LoadInt64(&p.processed),
		FailedCount:    atomic.LoadInt64(&p.failed),
		MaxQueueSize:   p.maxSize,
		Workers:        p.workers,
	}
}

// Closed 工作池是否已關閉
func (p *Pool) Closed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}

// Close 停止接收新工作，等待已排入的工作完成
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.done)
	p.mu.Unlock()

	p.wg.Wait()
	common.LogInfo("工作池已關閉",
		zap.Int64("processed", atomic.LoadInt64(&p.processed)),
		zap.Int64("failed", atomic.LoadInt64(&p.failed)),
	)
}
