package indexer

import "context"

// TriggerAsync schedules a background index run for the project. Triggers
// that arrive while a run is in flight coalesce into a single follow-up
// run, so the index always catches up to the latest save without queueing
// one run per keystroke. onDone, if non-nil, is called after each run.
func (idx *Indexer) TriggerAsync(projectID string, onDone func(*Stats, error)) {
	st := idx.state(projectID)

	select {
	case st.dirty <- struct{}{}:
	default:
	}
	if !st.loop.TryAcquire() {
		// A loop is already draining this project's triggers.
		return
	}

	go func() {
		for {
			select {
			case <-st.dirty:
			default:
				st.loop.Release()
				// A trigger may have fired between the empty check and
				// the release; it would have failed TryAcquire, so pick
				// its work up here.
				select {
				case <-st.dirty:
				default:
					return
				}
				if !st.loop.TryAcquire() {
					// A newer loop owns the project now; requeue for it.
					select {
					case st.dirty <- struct{}{}:
					default:
					}
					return
				}
			}
			stats, err := idx.Index(context.Background(), projectID)
			if onDone != nil {
				onDone(stats, err)
			}
		}
	}()
}
