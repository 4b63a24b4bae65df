// Package planner turns scanned files and a rename template into an ordered
// list of preview items with conflict flags.
//
// Planning never modifies the filesystem. The only I/O is the existence probe
// used to flag destinations that are already taken, and it can be replaced via
// Options.Exists.
//
// Two strategies exist:
//
//   - standard: files keep their directory and get the expanded template as
//     their new name, with one global counter across the batch.
//   - vacation: files with a capture time are grouped into day folders
//     ("Day 1", "Day 2", ...) counted from a start date, with a counter that
//     restarts in every day. Files without a capture time are listed but
//     deselected. When no file has a capture time the standard plan is used.
package planner
