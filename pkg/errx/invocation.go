package errx

// InvocationError reports that a dynamically dispatched call failed.
// Target holds the error raised by the invoked code.
type InvocationError struct {
	Op     string
	Target error
}

func (e *InvocationError) Error() string {
	if e.Target == nil {
		return "invocation of " + e.Op + " failed"
	}
	return "invocation of " + e.Op + " failed: " + e.Target.Error()
}

func (e *InvocationError) Unwrap() error {
	return e.Target
}

// UnwrapInvocation strips an InvocationError wrapper and returns its target.
// Any other error, and a wrapper without a target, is returned unchanged.
func UnwrapInvocation(err error) error {
	if inv, ok := err.(*InvocationError); ok && inv.Target != nil {
		return inv.Target
	}
	return err
}
