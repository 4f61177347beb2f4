// Package merge concatenates per-session pose tensors into one dataset.
//
// Sessions load independently on a bounded worker pool; results are slotted
// by input position and concatenated in that order, never completion order,
// so the output is deterministic regardless of scheduling. The parallel
// per-frame session-id sequence is built from the same ordering.
//
// Error policy: every session is attempted even after one fails, and all
// load failures come back in a single aggregated LoadError naming each
// failing session id and path. A merge never returns a partial dataset
// alongside an error.
package merge
