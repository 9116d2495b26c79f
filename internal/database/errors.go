package database

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/deppfellow/petcare-api/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsConnectionLoss reports whether err means the server can no longer be
// reached through the current pool, as opposed to a failure of the statement
// itself.
//
// Caller cancellation and statement timeouts are not connection loss.
func IsConnectionLoss(err error) bool {
	if err == nil || errors.Is(err, ErrNotConnected) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch sqlerr.MapCode(pgErr.Code) {
		case sqlerr.ConnectionException, sqlerr.AdminShutdown:
			return true
		default:
			return false
		}
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
