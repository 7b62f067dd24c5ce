package rowchase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/rowchase/blobstore"
	"github.com/hupe1980/rowchase/chase"
	"github.com/hupe1980/rowchase/fmindex"
	"github.com/hupe1980/rowchase/internal/resource"
)

// Source describes where an index comes from. Use Local, Remote or
// FromIndex.
type Source interface {
	name() string
	load(ctx context.Context, o *options, rc *resource.Controller) (*loaded, error)
}

type storeSource struct {
	store blobstore.BlobStore
	blob  string
}

func (s storeSource) name() string { return s.blob }

func (s storeSource) load(ctx context.Context, o *options, rc *resource.Controller) (*loaded, error) {
	b, err := s.store.Open(ctx, s.blob)
	if err != nil {
		return nil, err
	}
	l, err := loadBlob(ctx, b, rc, o.readChunkSize)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	return l, nil
}

// Local opens the index file at path. The file is memory-mapped and
// decoded without copying.
func Local(path string) Source {
	return storeSource{
		store: blobstore.NewLocalStore(filepath.Dir(path)),
		blob:  filepath.Base(path),
	}
}

// Remote opens the blob name from store.
func Remote(store blobstore.BlobStore, name string) Source {
	return storeSource{store: store, blob: name}
}

type indexSource struct {
	idx *fmindex.Index
}

func (indexSource) name() string { return "memory" }

func (s indexSource) load(context.Context, *options, *resource.Controller) (*loaded, error) {
	return &loaded{idx: s.idx}, nil
}

// FromIndex wraps an index that is already in memory.
func FromIndex(idx *fmindex.Index) Source {
	return indexSource{idx: idx}
}

// Resolver owns a loaded index and resolves rows against it.
//
// A Resolver is safe for concurrent use, including Close: Close waits for
// in-flight resolutions and validations before releasing the index. Chasers
// obtained from NewChaser borrow its index and must not be used after Close.
type Resolver struct {
	idx    *fmindex.Index
	blob   blobstore.Blob
	rc     *resource.Controller
	held   int64
	opts   options
	logger *Logger
	pool   sync.Pool

	// mu is held shared by every call that reads the index and exclusively
	// by Close while it releases the backing bytes.
	mu     sync.RWMutex
	closed atomic.Bool
}

// Open loads an index from src.
func Open(ctx context.Context, src Source, optFns ...Option) (*Resolver, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	logger := o.logger.WithSource(src.name())
	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:     o.memoryLimit,
		MaxConcurrentReads:   int64(o.readConcurrency),
		ReadLimitBytesPerSec: o.readLimit,
	})

	start := time.Now()
	l, err := src.load(ctx, &o, rc)
	if err != nil {
		err = translateError(err)
		logger.LogOpen(ctx, nil, 0, false, err)
		o.metricsCollector.RecordOpen(0, false, time.Since(start), err)
		return nil, err
	}
	logger.LogOpen(ctx, l.idx, l.size, l.zeroCopy, nil)
	o.metricsCollector.RecordOpen(l.size, l.zeroCopy, time.Since(start), nil)

	r := &Resolver{
		idx:    l.idx,
		blob:   l.blob,
		rc:     rc,
		held:   l.held,
		opts:   o,
		logger: logger,
	}
	r.pool.New = func() any { return chase.New(r.idx, r.opts.chaseOptions...) }

	if o.validate {
		if err := r.Validate(ctx); err != nil {
			_ = r.Close()
			return nil, err
		}
	}
	return r, nil
}

// Index returns the loaded index.
func (r *Resolver) Index() *fmindex.Index { return r.idx }

// NewChaser returns a Chaser over the loaded index, configured with the
// chase options given to Open followed by opts.
func (r *Resolver) NewChaser(opts ...chase.Option) *chase.Chaser {
	all := make([]chase.Option, 0, len(r.opts.chaseOptions)+len(opts))
	all = append(all, r.opts.chaseOptions...)
	all = append(all, opts...)
	return chase.New(r.idx, all...)
}

// FlatOffset resolves row to its offset in the joined reference text.
func (r *Resolver) FlatOffset(ctx context.Context, row, qlen uint32) (uint32, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, err := r.resolve(ctx, row, qlen)
	if err != nil {
		return 0, err
	}
	defer r.pool.Put(c)
	off, _ := c.FlatOffset()
	return off, nil
}

// Offset resolves row to a reference coordinate for a hit of length qlen.
// Hits that straddle a reference or ambiguous-base boundary come back with
// Resolved set to false.
func (r *Resolver) Offset(ctx context.Context, row, qlen uint32) (fmindex.Coord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, err := r.resolve(ctx, row, qlen)
	if err != nil {
		return fmindex.Coord{}, err
	}
	defer r.pool.Put(c)
	return c.SplitOffset()
}

// resolve must be called with r.mu held shared.
func (r *Resolver) resolve(ctx context.Context, row, qlen uint32) (*chase.Chaser, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	c := r.pool.Get().(*chase.Chaser)
	err := drive(c, row, qlen)
	if err != nil {
		if errors.Is(err, chase.ErrInvalidRow) {
			err = &ErrRowOutOfRange{Row: row, Len: r.idx.Params().Len, cause: err}
		} else {
			err = translateError(err)
		}
	}
	r.logger.LogResolve(ctx, row, qlen, c.Steps(), err)
	r.opts.metricsCollector.RecordResolve(c.Steps(), time.Since(start), err)
	if err != nil {
		r.pool.Put(c)
		return nil, err
	}
	return c, nil
}

// drive runs c to completion, issuing prefetches itself when the chaser was
// configured to defer them.
func drive(c *chase.Chaser, row, qlen uint32) error {
	if err := c.Start(row, qlen); err != nil {
		return err
	}
	for !c.Done() {
		if c.State() == chase.StateAwaitingPrefetch {
			if err := c.Prepare(); err != nil {
				return err
			}
		}
		if err := c.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// Validate walks the whole index and checks every stored sample.
func (r *Resolver) Validate(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed.Load() {
		return ErrClosed
	}
	start := time.Now()
	rows := r.idx.Params().Len
	err := translateError(r.idx.Validate(ctx))
	r.logger.LogValidate(ctx, rows, err)
	r.opts.metricsCollector.RecordValidate(rows, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// Close releases the index. It is idempotent.
func (r *Resolver) Close() error {
	if r == nil || r.closed.Swap(true) {
		return nil
	}
	// New calls now fail with ErrClosed; wait out the ones already running.
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rc.ReleaseMemory(r.held)
	if r.blob != nil {
		return r.blob.Close()
	}
	return nil
}
