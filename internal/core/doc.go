// Package core provides the customer lookup logic.
//
// The package is independent of any transport. It is used by the HTTP server,
// the Lambda entrypoint and the CLI without modification.
//
// # Pipeline
//
// A lookup runs in three pure steps over freshly fetched sheet text:
//
//  1. [BuildTable] splits the text into lines, drops blank ones, and parses
//     each line with [ParseLine]. The first line is the header.
//  2. [ResolveColumns] finds the phone, email and name columns by
//     case-insensitive substring match on the header.
//  3. [FindRecord] compares the search key against the phone column (digits
//     only) or, when the key contains "@", the email column (case-insensitive).
//
// Nothing is cached between lookups. [Service.Lookup] wraps the pipeline with
// the sheet fetch, a concurrency limit on fetches, and the optional audit log:
//
//	svc, err := core.NewService(src, store, cfg.Lookup)
//	out, err := svc.Lookup(ctx, "(555) 123-4567")
//	if errors.Is(err, core.ErrEmptySource) {
//	    // sheet has no rows
//	}
//	if out.Found {
//	    greet(out.CustomerName)
//	}
//
// # Error Handling
//
// Only an empty sheet, a missing search key, a failed fetch and a saturated
// limiter are errors. Missing columns, short rows and unmatched keys are
// normal outcomes. Technical errors are mapped to user-facing messages with
// [MapError].
package core
