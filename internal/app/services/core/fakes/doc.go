// Package fakes provides in-memory implementations of the repository and service
// contracts. They reproduce the conditional-write semantics of the Mongo and Redis
// implementations so usecase tests can exercise races without external services.
//
// Only _test.go files may import this package.
package fakes
