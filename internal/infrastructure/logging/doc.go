// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON lines on stderr
//   - Development: colored console output on stderr
//
// Logs never go to stdout, which carries the release-notes document when
// the CLI writes to "-".
//
// Example Usage:
//
//	logger := logging.NewDefault().ForRun(id.NewRunID().String())
//	logger.Info("parse started", zap.String("url", url))
//	logger.Error("fetch failed", zap.Error(err))
package logging
