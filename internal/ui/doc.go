// Package ui implements the labelprint terminal interface with Bubble Tea.
//
// # Screens
//
// The labels screen shows the pasted rows in a bubbles table, the selected
// printer and a print range entered in two text inputs. Which columns the
// table has depends on the configured fields:
//
//	fields = "name barcode date"  →  # | Name/Barcode | Date
//	fields = "barcode"            →  # | Barcode
//	label_mode = "single"         →  # | Text
//
// The config screen lists the raw settings sorted by key. The log screen
// tails the log file written while the UI runs, colored by level, and can
// hide entries below warning.
//
// # Printing
//
// Print is enabled only while the range selects at least one row and a
// printer is configured. The job runs on its own goroutine through
// Printer.Submit; a Bubble Tea command waits for the single result and
// turns it into a jobMsg, so the screen keeps redrawing in the meantime.
// Further print requests are ignored until that result arrives.
//
// # Preferences
//
// The selected printer and the theme are written to prefs.toml whenever they
// change, so the next session starts with the same choices.
package ui
