// Package naming expands rename templates against a file's metadata and keeps
// the results safe to use as file names and relative paths.
//
// Templates use {placeholder} tokens. Placeholder names match metadata keys
// case-insensitively. Unknown placeholders are left in the output verbatim so a
// typo shows up in the preview instead of failing the batch.
//
// {counter} and {counter:N} are not resolved here: Expand rewrites them into the
// canonical {counter:N} form (N defaults to 3) and the planner materialises the
// value with ApplyCounter, since the counter depends on the file's position in
// the batch rather than on its metadata.
package naming
