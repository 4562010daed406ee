// Package errx provides the structured, code-based error type raised by the
// message-processing framework.
//
// Each framework error has:
//   - A stable 5-digit category code (e.g., "61000" for routing errors)
//   - A category description (e.g., "Routing error")
//   - A user-facing message
//   - Optional structured context (key-value pairs)
//   - Optional cause and base sentinel errors
//   - The stack captured where it was created, replaceable via SetStackTrace
//
// Category codes follow a scheme where the first two digits represent the domain:
//   - 60xxx: Messaging errors
//   - 61xxx: Routing errors
//   - 62xxx: Transformer errors
//   - 63xxx: Connector/transport errors
//   - 64xxx: Lifecycle errors
//   - 65xxx: Security errors
//   - 68xxx: CLI errors
//   - 69xxx: Configuration errors
//
// Every *Error reports Framework() == true, which is how the diagnostics
// package tells framework-internal errors apart from application errors.
//
// Example usage:
//
//	err := errx.WrapRouting("no route for message", cause).
//		WithContext("endpoint", "orders-in").
//		WithBase(sentinelErr)
//
//	if errors.Is(err, sentinelErr) {
//		// Handle specific error
//	}
//
//	fmt.Println(errx.UserString(err))  // User-friendly message
//	fmt.Println(errx.DebugString(err)) // Full debug details
package errx
