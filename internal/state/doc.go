// Package state holds the launcher's shared view of the identity server and
// the signed-in account.
//
// # Overview
//
// The status poller writes, the UI reads. Store sits between the two
// goroutines and hands out value snapshots, so a render never observes a
// half-applied update.
//
//	Producer (Poller):             Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ CheckStatus()  │            │                 │
//	│      ↓         │            │                 │
//	│ store.Apply()  │───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓          │
//	│  wait 15s...   │            │  render view    │
//	└────────────────┘            └─────────────────┘
//
// # Server Status
//
// ServerStatus is a tri-state: Unknown before the first probe, Online after a
// successful probe, Offline after a failed probe or when the identity URL is
// cleared. NextStatus is the whole transition table:
//
//	URLCleared       → Offline
//	URLChanged       → Unknown
//	ProbeSucceeded   → Online
//	ProbeFailed      → Offline
//
// Apply runs the transition and records the details that go with it: the
// registration endpoint advertised by the last good probe, the time of the
// last probe, and how many probes in a row have failed. Any event other than a
// successful probe forgets the registration endpoint, so the UI only offers
// sign-up while the server is known to support it.
//
// # Session
//
// SetSession records the account name shown on the home page. It is set after
// a login (or when a stored token is found at startup) and cleared on logout.
//
// # Zero Value
//
// A zero Store is ready to use and reports StatusUnknown.
package state
