// Package api serves the meteradmin REST API over HTTP.
//
// Every route except login and the health check requires an admin bearer
// token. Handlers decode JSON, call the owner, auth and meter services, and
// translate domain errors to status codes:
//
//	validation        400
//	bad/missing token 401
//	not an admin      403
//	not found         404
//	duplicate e-mail  409
//	storage failure   500
//
// Error bodies are {"error": "<message>"}. The server speaks HTTP/1.1 and
// cleartext HTTP/2 (h2c), applies CORS for the configured origins and writes
// one access-log line per request.
package api
