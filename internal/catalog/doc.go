// Package catalog persists merge-run provenance in SQLite.
//
// Each successful merge records one run row (uuid, timestamp, merged shape)
// plus one row per contributing session, so a dataset on disk can always be
// traced back to the exact session files and ordering that produced it.
// Writers serialize through a file lock next to the database; the schema
// carries a version guard and users clear the database to adopt a new one.
//
// The catalog is purely additive bookkeeping: the merge engine never reads
// from it and runs fine with it disabled.
package catalog
