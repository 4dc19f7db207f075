// Package state keeps the history of print jobs submitted during a session.
//
// Jobs are recorded by the background submit goroutine and read by the
// terminal UI, so the Store guards its data with a sync.RWMutex and hands
// out copies:
//
//	store := &state.Store{}
//	store.Record(state.Job{ID: id, Printer: "d304bc", Labels: 4, Err: err})
//	snap := store.Snapshot()
//	if snap.Failing() { ... }
//
// A failed job keeps the previous history and records LastError. Two
// consecutive failures mark the snapshot as failing, which the UI shows in
// its status bar. Only the most recent Limit jobs are kept.
package state
