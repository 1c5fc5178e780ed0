// Package logging provides structured logging for luxctl built on zap.
//
// Logging is silent by default so CLI output stays clean. Set the
// LUXCTL_LOG_LEVEL environment variable (debug, info, warn, error) to enable
// console output, or call Initialize with an explicit level.
//
// Besides the usual leveled helpers, the package offers protocol-oriented
// helpers (LogConnection, LogFrame, LogRawBytes) used by the session and
// wire codec to trace controller exchanges at debug level.
package logging
