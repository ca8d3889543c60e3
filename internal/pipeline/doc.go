// Package pipeline orchestrates an evaluation run as a sequence of steps.
// Steps communicate through a shared RunReport: loading fills the word
// queue, resume shrinks it, evaluation consumes it concurrently, and the
// summary step closes the run. The batch processor bounds API concurrency
// and streams each result to a callback so progress survives interruption.
package pipeline
