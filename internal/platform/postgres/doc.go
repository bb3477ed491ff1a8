// Package postgres implements the store interfaces on PostgreSQL using pgx,
// squirrel for query building and scany for row scanning. It also owns the
// embedded goose migrations and the connection pool setup.
package postgres
