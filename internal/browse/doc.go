// Package browse implements the one-product-at-a-time navigation controller.
//
// # Overview
//
// A Controller owns a small piece of observable state (State): the current
// product id, the catalog size, a loading flag and the last fetched product.
// Presentation layers read it with State() or receive every change through
// Subscribe. They drive it with Init, Load, Next, Prev and GoTo.
//
// # Request Fencing
//
// Every fetch takes a new token from a strictly increasing counter. When the
// fetch returns, its result is applied only if its token is still the newest
// one issued:
//
//	Load #1 (token 1) ──────────────┐ response arrives late, dropped
//	Load #2 (token 2) ──────┐       │
//	                        ▼       ▼
//	Current = product #2,  Loading = false (token 2 only)
//
// Superseded fetches are not cancelled; their results are ignored. The
// catalog client's per-attempt timeout is the only hard bound on them.
//
// # Navigation
//
// Next, Prev and GoTo are no-ops while Loading is true. Otherwise they move
// CurrentID, clear Current so observers can show a placeholder, and load the
// new product. Moving, clearing and issuing the token happen under one lock,
// so concurrent callers cannot both slip past the Loading check.
//
//   - Next: id+1, wrapping to 1 after MaxID
//   - Prev: id-1, wrapping to MaxID (or 1 when MaxID is 0) before 1
//   - GoTo: any id in [1, MaxID]; anything else is ignored
//
// # Errors
//
// The controller does not swallow catalog errors. A failed Load returns the
// error to its caller, leaves Current nil and resets Loading, provided no
// newer fetch has started in the meantime.
//
// # Concurrency Model
//
// All methods are safe for concurrent use. The state mutex is never held
// across a network call, and subscribers are invoked outside it with a
// defensive copy of the state.
package browse
