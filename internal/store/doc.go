// Package store defines the persistence interfaces (TaskStore, UserStore),
// the bounded TaskQuery they answer, the sentinel errors every implementation
// returns, and a pgx transaction helper.
package store
