// SPDX-License-Identifier: Apache-2.0

// Package shadowdb defines the interface the differ's "desired" side is
// loaded from: a disposable, guaranteed-empty PostgreSQL instance that
// the caller applies schema files to before loading its Catalog.
// Provisioning that instance (a Docker container lifecycle) is outside
// the core - see internal/testutils for the testcontainers-go-backed
// reference implementation this interface is designed to be satisfied
// by.
package shadowdb

import "context"

// ShadowDB provisions and tears down a disposable PostgreSQL database
// used only to compute the "desired" catalog from schema files.
type ShadowDB interface {
	// ConnectionString returns a DSN for the shadow database. The
	// database is guaranteed empty at the time ConnectionString first
	// returns.
	ConnectionString(ctx context.Context) (string, error)

	// Close tears down the shadow database. Callers must call Close
	// unconditionally, including on a cancelled context: container
	// cleanup must always run.
	Close(ctx context.Context) error
}
