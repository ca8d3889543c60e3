// Package wordlist loads crossword candidate entries from line-oriented
// text files. It normalizes entries, drops blanks, comments, and
// duplicates, and reports statistics about what was kept and skipped.
package wordlist
