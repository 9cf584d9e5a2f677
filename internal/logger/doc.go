// Package logger provides logging for contribwriter.
//
// The Logger interface distinguishes between internal logs (Info, Warning,
// Error), which are written to a log file when debug logging is enabled, and
// user-facing messages (InfoToUser, WarningToUser, Success, StatusMessage),
// which are always printed to the terminal. Internal logs go through
// log/slog with a text handler.
package logger
