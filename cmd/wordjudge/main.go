// Package main provides the entry point for the wordjudge CLI.
//
// Wordjudge rates crossword wordlist entries with a language model.
// It reads plain text wordlists, asks the model to judge each entry's
// quality as a puzzle answer, and stores the ratings for export.
//
// Usage:
//
//	wordjudge eval words.txt
//	wordjudge export -o results.csv
//
// See --help for all available options.
package main

// main is the entry point for wordjudge.
func main() {
	Execute()
}
