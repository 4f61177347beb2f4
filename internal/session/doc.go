// Package session maintains the registry of recording sessions and their
// categorical metadata.
//
// A Registry is built once per analysis run, either directly from records or
// from a delimited metadata table with one header row. Every session carries
// a unique numeric id, a source path for its pose file, and an ordered set of
// categorical attributes sharing one declared column schema. Lookups are by
// id; duplicate or missing ids fail the build rather than being coerced.
package session
