// Package llm provides the language-model client used to rate wordlist
// entries. It builds the evaluation prompt, calls the Gemini API with a
// JSON response schema, and parses the structured evaluation out of the
// model's reply.
package llm
