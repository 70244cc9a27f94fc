// Package driver formats many grammar files in one run: it collects files
// from paths, formats them with bounded parallelism, writes or reports the
// result per file, and keeps an on-disk cache of files known to be
// formatted.
package driver
