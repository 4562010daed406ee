package errx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnwrapInvocation(t *testing.T) {
	target := errors.New("boom")

	t.Run("strips wrapper", func(t *testing.T) {
		err := &InvocationError{Op: "Transform", Target: target}
		assert.Same(t, target, UnwrapInvocation(err))
		assert.Equal(t, "invocation of Transform failed: boom", err.Error())
		assert.ErrorIs(t, err, target)
	})

	t.Run("other errors unchanged", func(t *testing.T) {
		assert.Same(t, target, UnwrapInvocation(target))
		assert.Nil(t, UnwrapInvocation(nil))
	})

	t.Run("wrapper without target unchanged", func(t *testing.T) {
		err := &InvocationError{Op: "Transform"}
		assert.Same(t, error(err), UnwrapInvocation(err))
		assert.Equal(t, "invocation of Transform failed", err.Error())
	})
}
