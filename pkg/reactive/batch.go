package reactive

// Batch groups multiple signal writes into a single notification phase.
// Notifications raised inside fn are collected, deduplicated by listener
// ID, and delivered once when the outermost batch completes. Batches nest.
//
//	reactive.Batch(func() {
//	    day.Set(30)
//	    month.Set(2)
//	})
//	// Dependents recompute once, not twice.
func Batch(fn func()) {
	ctx := currentContext()
	ctx.batchDepth++

	defer func() {
		ctx.batchDepth--
		if ctx.batchDepth == 0 {
			flushPending(ctx)
		}
	}()

	fn()
}

// flushPending deduplicates and delivers queued notifications.
func flushPending(ctx *trackingContext) {
	updates := ctx.pending
	ctx.pending = nil
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	for _, l := range updates {
		if seen[l.ID()] {
			continue
		}
		seen[l.ID()] = true
		l.MarkDirty()
	}
}
