// Package ecode defines the error codes returned by the HTTP binding and the
// message helpers used to phrase validation errors consistently.
//
// # Error Code Convention
//
//   - 0: Success (OK)
//   - -400 to -499: Request errors (bad page arguments, malformed cursors)
//   - -500+: Server errors (store failures)
//
// # Message Helpers
//
// Helpers prefix a field name to a fixed phrase:
//
//	ecode.FieldIsInvalid("first")   // "first invalid"
//	ecode.FieldIsRequired("field")  // "field required"
//	ecode.NotExist("collection")    // "collection does not exist"
package ecode
