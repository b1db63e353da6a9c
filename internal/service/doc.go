// Package service implements the application's business operations on top
// of the store contracts: account signup and authentication, and the task
// lifecycle including the recurrence rollover state machine.
//
// Services hold no state between calls; every operation reads and writes
// through the injected stores, grouping multi-step mutations with
// store.RunInTransaction.
package service
