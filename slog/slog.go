// Package slog provides log/slog decorators for harvest services and a
// progress logger for crawl runs.
package slog
