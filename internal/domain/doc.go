// Package domain contains the core entities of the tasks API: Task, its
// closed TaskStatus enumeration with the status normalizer, and User.
// It has no knowledge of storage or transport.
package domain
