// Package service provides the application-level services: the collection
// save coordinator and the payment entitlement reconciler.
package service
