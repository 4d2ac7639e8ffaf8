// Package tape records calculator sessions in SQLite and replays them.
//
// A tape is an append-only list of Steps for one session. Each row keeps
// the key label that was pressed, the command it resolved to, and the
// display and ResultShown flag after the command ran.
//
// INVARIANTS:
//   - steps are ordered by seq, the engine's logical clock; wall time is
//     never stored
//   - (session_id, seq) is unique, so writing the same Step twice is a no-op
//   - replaying a session's commands on a fresh engine positioned at
//     started_at_seq reproduces every recorded display
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON: steps must belong to a session
//
// Session IDs are UUIDv7, so listing sessions by ID lists them in creation
// order.
package tape
