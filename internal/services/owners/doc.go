// Package owners registers, edits, lists and deletes officer and user
// records.
//
// Each owner is one document in the users collection plus one login account
// in the credential store, which is what keeps e-mail addresses unique.
// Account and document are created together; if the document write fails the
// account is removed again.
package owners
