package resource

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when memory limit would be exceeded.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for index bytes copied into memory.
	// Mapped files do not count against it.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxConcurrentReads is the maximum number of ranged reads in flight.
	// If 0, defaults to 1.
	MaxConcurrentReads int64

	// ReadLimitBytesPerSec caps remote read throughput.
	// If 0, unlimited.
	ReadLimitBytesPerSec int64
}

// Controller manages load-time resources: memory, read concurrency and read
// bandwidth.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Concurrency
	readSem *semaphore.Weighted

	// IO
	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentReads <= 0 {
		cfg.MaxConcurrentReads = 1
	}

	c := &Controller{
		cfg:     cfg,
		readSem: semaphore.NewWeighted(cfg.MaxConcurrentReads),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.ReadLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.ReadLimitBytesPerSec), int(cfg.ReadLimitBytesPerSec))
	}

	return c
}

// AcquireMemory attempts to reserve memory.
// Returns ErrMemoryLimitExceeded if limit would be exceeded.
// Non-blocking - callers control retry/backoff policy.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return ErrMemoryLimitExceeded
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured memory limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// MaxConcurrentReads returns the configured read concurrency.
func (c *Controller) MaxConcurrentReads() int {
	if c == nil {
		return 1
	}
	return int(c.cfg.MaxConcurrentReads)
}

// AcquireRead reserves a read slot, blocking while all slots are busy.
func (c *Controller) AcquireRead(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.readSem.Acquire(ctx, 1)
}

// TryAcquireRead reserves a read slot without blocking.
func (c *Controller) TryAcquireRead() bool {
	if c == nil {
		return true
	}
	return c.readSem.TryAcquire(1)
}

// ReleaseRead releases a read slot.
func (c *Controller) ReleaseRead() {
	if c == nil {
		return
	}
	c.readSem.Release(1)
}

// AcquireIO waits until the IO limit allows the specified number of bytes.
// Requests larger than one second of budget are split.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	burst := c.ioLimiter.Burst()
	for bytes > 0 {
		n := min(bytes, burst)
		if err := c.ioLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}
