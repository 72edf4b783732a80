package worker

import "sync"

// Task 為交給 pool 執行的一個工作
type Task func()

// Pool 背景工作池，目前只承載匯出封存上傳
type Pool interface {
	Submit(Task)
	// TrySubmit 佇列已滿或 pool 已停止時立即回傳 false，不會阻塞
	TrySubmit(Task) bool
	Stop()
}

// NewPool 建立 n 個 worker，n<=0 時為 1。
// 佇列長度與 worker 數相同，佇列滿時 Submit 會阻塞。
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task, n)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					job()
				}
			}
		}()
	}
	return p
}

type pool struct {
	jobs   chan Task
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// Submit 在 Stop 之後呼叫時丟棄工作
func (p *pool) Submit(t Task) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	p.jobs <- t
}

func (p *pool) TrySubmit(t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.jobs <- t:
		return true
	default:
		return false
	}
}

// Stop 等待佇列中的工作全部完成；重複呼叫無作用
func (p *pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
