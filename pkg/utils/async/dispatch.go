package async

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/m-mizutani/ctxlog"
)

// ForEach runs fn for every index in [0, n) across at most limit goroutines
// and blocks until all of them finish. Panics inside fn are recovered and
// logged so one bad item cannot take down the batch. limit <= 0 means one
// goroutine per item.
func ForEach(ctx context.Context, limit, n int, fn func(ctx context.Context, i int)) {
	if n <= 0 {
		return
	}
	if limit <= 0 || limit > n {
		limit = n
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, limit)

	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					ctxlog.From(ctx).Error("panic in async task",
						"index", i,
						"recover", r,
						"stack", string(debug.Stack()))
				}
			}()

			fn(ctx, i)
		}(i)
	}

	wg.Wait()
}
