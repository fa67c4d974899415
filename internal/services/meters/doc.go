// Package meters is the persistence gateway for water-meter collections.
//
// ReplaceMeters turns a finalized payload into one document patch: every
// payload slot is written and every stored meter field the payload no longer
// names is deleted, all in a single store update.
package meters
