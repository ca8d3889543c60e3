// Package config provides configuration structures and utilities for
// wordjudge. It defines the main options for evaluation runs, model
// profiles loaded from the configuration file, and report generation
// preferences.
package config
