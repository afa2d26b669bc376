// Package api contains the HTTP handlers, request/response models, and
// error mapping for the Cardbox API.
package api
