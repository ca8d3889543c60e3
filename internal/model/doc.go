// Package model defines the core data structures shared across wordjudge.
// It contains the evaluation result produced by the language model, the
// rating bands used for reporting, and the run report that accumulates
// results over a full wordlist evaluation.
package model
