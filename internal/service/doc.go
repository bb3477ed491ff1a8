// Package service contains the application use cases. It sits between the
// HTTP handlers and the store interfaces and owns the rules that span them:
// turning list parameters into a bounded query, normalizing task statuses
// before they are written, and registering and authenticating users.
//
// Services receive their stores through constructor injection and never
// depend on a concrete database. Expected conditions come back as domain or
// store sentinels (validation errors, not found, duplicate email); anything
// else is wrapped in a ServiceError.
package service
