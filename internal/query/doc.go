// Package query narrows, orders and pages owner listings.
//
// Search is either a case-insensitive substring match or a fuzzy match over
// every text field of an owner plus each meter's id and address. Sorting uses
// locale-aware collation so mixed-case names order the way people expect.
package query
