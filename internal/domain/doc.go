// Package domain defines the core business entities of the task tracker:
// users, tasks, and login events, together with their validation rules.
//
// Entities are plain structs with explicit named fields. Status, priority,
// and recurrence are closed enumerations; unrecognized values are rejected
// at parse time rather than silently written through.
package domain
