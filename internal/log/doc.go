// Package log provides secure logging functionality with automatic
// sanitization of sensitive information, built on top of the standard
// slog package.
//
// Long evaluation runs log freely at debug level, and those logs get
// pasted into issues and shared terminals. The SecureHandler masks API
// credentials (Gemini and Google Cloud keys, bearer tokens, service
// account material) before they reach the output, so verbose mode never
// leaks a key.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	logger.Info("client ready",
//	    "api_key", "AIza...",  // masked
//	    "model", "gemini-2.5-flash",
//	)
//
//	slog.SetDefault(logger)
package log
