// Package label turns pasted spreadsheet text into printable labels.
//
// # Line format
//
// Each line holds a name (which doubles as the barcode) and an optional date,
// separated by a tab:
//
//	Alice	2024-01-01
//	Bob
//	Carol
//
// The first line yields a label with a date, the second a label without a
// date column, and the third a label whose date column is present but blank.
// Blank lines are skipped, so rows are numbered densely.
//
// Lines with more than two columns are accepted when at most two of them
// carry text after trimming; those are read as name and date in order.
//
// # Selection
//
// Select extracts a 1-based inclusive row range; WithWarmUp prepends the
// synthetic warm-up label that primes a printer before the real batch.
package label
