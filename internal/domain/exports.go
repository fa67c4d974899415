package domain

import (
	interfaces "meteradmin/internal/domain/interfaces"
	types "meteradmin/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	OwnerID        = types.OwnerID
	Role           = types.Role
	Collection     = types.Collection
	MeterRecord    = types.MeterRecord
	Meters         = types.Meters
	Owner          = types.Owner
	OfficerInput   = types.OfficerInput
	UserInput      = types.UserInput
	OfficerEdit    = types.OfficerEdit
	UserEdit       = types.UserEdit
	Document       = types.Document
	Patch          = types.Patch
	Filter         = types.Filter
	SortOrder      = types.SortOrder
	SearchMode     = types.SearchMode
	ListQuery      = types.ListQuery
	ListResult     = types.ListResult
	Account        = types.Account
	AdminSession   = types.AdminSession
	PasswordChange = types.PasswordChange
	Claims         = types.Claims
)

// Constants re-exported from the types subpackage.
const (
	RoleAdmin       = types.RoleAdmin
	RoleOfficer     = types.RoleOfficer
	RoleUser        = types.RoleUser
	CollectionUsers = types.CollectionUsers
	CollectionAdmin = types.CollectionAdmin
	SortAscend      = types.SortAscend
	SortDescend     = types.SortDescend
	SearchContains  = types.SearchContains
	SearchFuzzy     = types.SearchFuzzy
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	DocumentStore   = interfaces.DocumentStore
	CredentialStore = interfaces.CredentialStore
	SessionStore    = interfaces.SessionStore
	AuthService     = interfaces.AuthService
	OwnerService    = interfaces.OwnerService
	MeterGateway    = interfaces.MeterGateway
)
