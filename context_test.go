package cmdkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestWithInvocation tests storing and retrieving an invocation.
func TestWithInvocation(t *testing.T) {
	inv := testInvocation()
	ctx := WithInvocation(context.Background(), inv)

	assert.Equal(t, inv, InvocationFrom(ctx))
}

// TestInvocationFromMissing tests the nil return when nothing is stored.
func TestInvocationFromMissing(t *testing.T) {
	assert.Nil(t, InvocationFrom(context.Background()))
}

// TestMustInvocationFrom tests the panicking accessor.
func TestMustInvocationFrom(t *testing.T) {
	inv := testInvocation()
	ctx := WithInvocation(context.Background(), inv)
	assert.Equal(t, inv, MustInvocationFrom(ctx))

	assert.Panics(t, func() {
		MustInvocationFrom(context.Background())
	})
}
