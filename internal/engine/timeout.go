package engine

import (
	"context"
	"time"
)

// WithTimeout wraps a capability so every Execute call carries its own
// deadline. A hung engine then yields a failed, fully timed record instead
// of stalling the pass; the recorded elapsed time reflects the bound.
// A non-positive duration returns the capability unchanged.
func WithTimeout(conn Connection, d time.Duration) Connection {
	if d <= 0 {
		return conn
	}

	return &timeoutConn{Connection: conn, d: d}
}

type timeoutConn struct {
	Connection
	d time.Duration
}

func (t *timeoutConn) Execute(ctx context.Context, query string, kind Kind, params Params) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()

	return t.Connection.Execute(ctx, query, kind, params)
}
