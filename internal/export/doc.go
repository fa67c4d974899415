// Package export renders owner listings as .xlsx workbooks.
//
// One sheet per workbook: a bold, centered header row followed by one
// numbered row per owner, in the order given. Columns are sized to their
// widest cell.
package export
