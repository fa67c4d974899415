package types

// OwnerID identifies an owner document (officer, user or admin).
type OwnerID string

// String returns the string form of the owner identifier.
func (id OwnerID) String() string { return string(id) }

// Role distinguishes the kinds of owner documents.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleOfficer Role = "officer"
	RoleUser    Role = "user"
)

// String returns the string form of the role.
func (r Role) String() string { return string(r) }

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOfficer, RoleUser:
		return true
	}
	return false
}

// Collection names a group of documents in the document store.
type Collection string

const (
	// CollectionUsers holds officer and user documents, told apart by role.
	CollectionUsers Collection = "users"
	// CollectionAdmin holds admin documents.
	CollectionAdmin Collection = "admin"
)

// String returns the string form of the collection name.
func (c Collection) String() string { return string(c) }
