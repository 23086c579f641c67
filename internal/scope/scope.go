// Package scope models the capability escalation needed for order-transaction
// mutations. End-user requests never carry write permission on transactions;
// the specific service method that needs it elevates explicitly and passes the
// token straight into the repository call.
package scope

// System authorizes transaction mutations outside the end-user's request
// scope. Obtain one with Elevate inside the mutation method that needs it and
// pass it only into the repository call. Never store it on a struct.
type System struct {
	elevated bool
}

// Elevate produces a system scope for a single mutation.
func Elevate() System {
	return System{elevated: true}
}

// Valid reports whether the token was produced by Elevate rather than being a
// zero value smuggled in.
func (s System) Valid() bool {
	return s.elevated
}
