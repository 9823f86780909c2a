// Package logger provides structured logging functionality for the
// application, including context propagation of request-scoped loggers.
package logger
