// Package main runs the meteradmin HTTP server. It keeps officer and user
// records with their water meters, and admin accounts, in a data directory
// (JSON files or SQLite) and serves them to the console and the meteradmin
// CLI.
//
// HTTP API
//
//	GET /healthz
//	    Liveness probe. No token required.
//
//	POST /api/login { "email", "password" }
//	    Exchange admin credentials for { token, role, email, uid, expiresAt }.
//	    The token is an HS256 JWT valid for tokenTTL (default 24h).
//
//	POST /api/change-password { "currentPassword", "newPassword", "confirmPassword" }
//	    Rotate the calling admin's password.
//
//	POST /api/register-officer { "name", "email", "id", "phoneNumber" }
//	POST /api/register-user { "name", "email", "phoneNumber", "street", "city",
//	                          "province", "country", "waterMeter1": { "id", "address" } }
//	    Create an owner and its account. E-mail addresses are unique across
//	    every role.
//
//	GET /api/officers?q=&mode=&sort=&order=&page=&pageSize=
//	GET /api/users?q=&mode=&sort=&order=&page=&pageSize=
//	    One page of officers or users. mode is contains (default) or fuzzy;
//	    order is ascend or descend.
//
//	GET /api/officers/export?...
//	GET /api/users/export?...
//	    The same filter and sort as an .xlsx workbook, not paged.
//
//	GET /api/owners/{id}
//	    One officer or user, with meters.
//
//	PATCH /api/edit-officer/{id} { "name", "id", "phoneNumber" }
//	PATCH /api/edit-user/{id} { "name", "phoneNumber", "street", "city", "province", "country" }
//	    Replace the editable profile fields.
//
//	PATCH /api/edit-water-meters/{id} { "meters": { "waterMeter1": { "id", "address" }, ... } }
//	    Replace a user's whole meter collection in one write. Slots must run
//	    1..N; stored meters the payload does not name are deleted.
//	    "waterMeters" is accepted in place of "meters".
//
//	DELETE /api/delete-officers { "officerIds": [...] }
//	DELETE /api/delete-users { "userIds": [...] }
//	    Remove owners and their accounts; reports { "deleted": N }.
//
// Behaviour
//
//   - Every /api route except login needs "Authorization: Bearer <token>"
//     from an account whose admin document has role admin.
//   - Responses are JSON. Errors carry { "error": "<message>" } with 400 for
//     invalid input, 401 for a missing or expired token, 403 for non-admins,
//     404 for unknown records, 409 for duplicate e-mails and 500 when the
//     store rejects a write.
//   - A lightweight access log records method, path, remote, status, bytes and
//     duration for each request.
//   - The default listen address is :8080. SIGINT or SIGTERM drains in-flight
//     requests before exit.
//
// Seed the first admin with "meteradmin admin init" against the same data
// directory.
package main
