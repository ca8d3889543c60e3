// Package store provides SQLite-based persistence for word evaluations.
// Every successful evaluation is written as it completes, which is what
// makes interrupted runs resumable: the stored words form the skip set
// for the next run.
package store
