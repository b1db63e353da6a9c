// Package api contains the HTTP handlers, request/response models, and
// error mapping for the task tracker's REST surface. Handlers depend on
// the service layer only; owner scoping is enforced from the JWT subject
// placed in the request context by the auth middleware.
package api
