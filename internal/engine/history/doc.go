// Package history provides bounded linear undo/redo for a math field.
//
// Unlike command-based undo systems, history records full snapshots: each
// entry captures the complete serialized document content and selection.
// The Manager owns an ordered sequence of snapshots and a cursor into it.
// Entries beyond the cursor form the redo region and are discarded whenever
// a new snapshot is taken.
//
// # Recording
//
// Snapshots are ignored until StartRecording is called. Recording is a
// one-way latch: there is no corresponding stop operation.
//
// # Coalescing
//
// Bursty edits (continuous typing) collapse to one undo step through
// SnapshotAndCoalesce: each call discards the previous coalesced entry
// before pushing the new one, so only the latest state of the burst is
// retained. Any plain Snapshot, Undo, or Redo ends the burst.
//
// # Save and restore
//
// Save captures the current document state without touching the stack;
// Restore applies a snapshot (or nil, meaning an empty document) back to
// the document, temporarily overriding the document's change-notification
// suppression when asked to. Both are independent of undo/redo position.
//
// # Hooks
//
// Undo, Redo, and Snapshot accept optional lifecycle hooks invoked
// synchronously around the transition. A hook must not itself call back
// into the manager; reentrancy is unsupported.
package history
