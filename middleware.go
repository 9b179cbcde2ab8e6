package cmdkit

import (
	"context"
)

// Handler runs a command once every gate has passed. args are the raw tokens
// following the matched alias; converting them to typed values is the host's
// business.
type Handler func(ctx context.Context, inv *Invocation, args []string) error

// Middleware wraps a handler. Dispatcher middleware is applied around every
// command's handler, first middleware outermost.
//
// Example:
//
//	logged := func(next cmdkit.Handler) cmdkit.Handler {
//	    return func(ctx context.Context, inv *cmdkit.Invocation, args []string) error {
//	        start := time.Now()
//	        err := next(ctx, inv, args)
//	        log.Printf("%s ran in %s", inv.Raw, time.Since(start))
//	        return err
//	    }
//	}
type Middleware func(Handler) Handler

// chain wraps h with mws, first middleware outermost.
func chain(h Handler, mws []Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
