// Package diag defines the error taxonomy shared by the formatter layers.
//
// # Kinds
//
//   - KindFormat – base formatting failure, every Error matches ErrFormat.
//   - KindParse – structurally malformed grammar input. Aborts the whole
//     format call; no partial output is produced.
//   - KindConfig – unreadable or invalid configuration data. Raised before
//     any parsing happens.
//
// Errors carry a stable Code (see codes.go) and, when known, the file path
// and 1-based line number. Callers match kinds with errors.Is against the
// sentinels ErrFormat, ErrParse and ErrConfig.
//
// Package diag does no rendering or IO; the CLI decides how to print.
package diag
