// Package frameindex broadcasts per-session metadata onto individual frames.
//
// Expand takes the per-frame session-id sequence a merge produced and a
// session registry, and yields a table with one row per frame carrying that
// frame's session attributes. Attribute rows are stored once per distinct
// session and shared across frames; Row materializes the view on demand, so
// the table costs O(sessions) attribute storage rather than O(frames).
package frameindex
