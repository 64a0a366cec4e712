// Package migrations embeds the SQL migrations for the SQLite save store.
package migrations
