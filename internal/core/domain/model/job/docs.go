// Package job contains the delivery job aggregate and its lifecycle state
// machine. A job moves through a linear progression from pending to delivered,
// with two escape hatches available from any non-terminal status: cancelled
// (terminal, privileged roles only) and on_hold (re-enterable).
//
// Every status change records a StatusEvent; the aggregate accumulates events
// and the persistence layer drains them in the same transaction as the job
// mutation, so the history table is a complete append-only audit trail.
package job
