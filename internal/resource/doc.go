// Package resource limits what loading an index may consume.
//
//   - Memory: bytes copied out of non-mappable blobs (fail-fast)
//   - Concurrency: ranged reads in flight (weighted semaphore)
//   - IO: read bandwidth from remote stores (token bucket)
//
// Example:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:     4 << 30,
//	    MaxConcurrentReads:   8,
//	    ReadLimitBytesPerSec: 200 << 20,
//	})
//
//	if err := rc.AcquireRead(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseRead()
//	if err := rc.AcquireIO(ctx, len(buf)); err != nil {
//	    return err
//	}
//
// All methods are safe for concurrent use and are no-ops on a nil
// Controller.
package resource
