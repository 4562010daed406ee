package errx

// CreateByCode creates an Error using the provided code, description, and message.
// The stack is captured at the caller of CreateByCode.
func CreateByCode(code, description, message string, cause error) *Error {
	e := &Error{
		code:        code,
		description: description,
		message:     message,
		cause:       cause,
	}
	e.setTrace(Capture(1))
	return e
}

// FromSentinel creates an Error from a sentinel error and optional message/cause.
// The sentinel determines the category via lookup; unknown sentinels fall back to
// the messaging category.
func FromSentinel(sentinel error, lookup func(error) (code, description string), message string, cause error) *Error {
	code, desc := lookup(sentinel)
	if code == "" {
		code = CodeMessaging
		desc = DescMessaging
	}
	return CreateByCode(code, desc, message, cause).WithBase(sentinel)
}

// Messaging creates a messaging error with code 60000.
func Messaging(message string) *Error {
	return CreateByCode(CodeMessaging, DescMessaging, message, nil)
}

// WrapMessaging wraps a cause with a messaging error.
func WrapMessaging(message string, cause error) *Error {
	return CreateByCode(CodeMessaging, DescMessaging, message, cause)
}

// Routing creates a routing error.
func Routing(message string) *Error {
	return CreateByCode(CodeRouting, DescRouting, message, nil)
}

// WrapRouting wraps a cause with a routing error.
func WrapRouting(message string, cause error) *Error {
	return CreateByCode(CodeRouting, DescRouting, message, cause)
}

// WrapTransformer wraps a cause with a transformer error.
func WrapTransformer(message string, cause error) *Error {
	return CreateByCode(CodeTransformer, DescTransformer, message, cause)
}

// WrapConnector wraps a cause with a connector/transport error.
func WrapConnector(message string, cause error) *Error {
	return CreateByCode(CodeConnector, DescConnector, message, cause)
}

// Config creates a configuration error.
// Use this for missing or unreadable resources that the framework cannot run without.
func Config(message string) *Error {
	return CreateByCode(CodeConfig, DescConfig, message, nil)
}

// WrapConfig wraps a cause with a configuration error.
func WrapConfig(message string, cause error) *Error {
	return CreateByCode(CodeConfig, DescConfig, message, cause)
}
