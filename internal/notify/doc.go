// Package notify implements the due-task reminder sweep: it finds tasks
// due on a given date across all owners, resolves each owner's contact
// info, and attempts delivery over the email and push channels.
//
// Delivery is best-effort and at-most-once per sweep. Each channel attempt
// is independent: a failure is captured as a DeliveryError, logged, and
// never aborts the other channel, the task, or the sweep. There is no
// retry and no de-duplication state; running the sweep twice for the same
// date sends duplicate reminders by design, and callers own the cadence.
package notify
