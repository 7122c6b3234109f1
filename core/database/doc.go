// Package database manages the relational store connection.
//
// It wraps GORM with a driver switch: MySQL for deployments, SQLite for
// local use and tests (the booking data fits comfortably in either). The
// mysql path builds a DSN with encoded credentials and explicit connect,
// read and write timeouts; the sqlite path pins the pool to a single
// connection so ":memory:" databases behave.
//
// Schema ownership lives with the feature models (AutoMigrate at startup),
// not with this package.
package database
