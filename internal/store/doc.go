// Package store defines the persistence contracts for the task tracker:
// interfaces for user, task, and login-event storage, the shared error
// taxonomy, and the transaction helper services use to group writes.
//
// The store is the single source of truth: services hold no cached state
// and every operation reads and writes through these interfaces. Concrete
// implementations live in internal/platform (e.g. platform/postgres).
package store
