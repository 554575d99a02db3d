// SPDX-License-Identifier: Apache-2.0

// Package testutils provides the reference implementation of
// pkg/shadowdb.ShadowDB, backed by testcontainers-go, plus the
// PostgreSQL error-code constants tests assert against.
package testutils

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/gdpotter/pgmt/pkg/shadowdb"
)

// ContainerShadowDB provisions a disposable PostgreSQL container per
// instance, satisfying pkg/shadowdb.ShadowDB. Auto-provisioning lives
// outside the core differ/catalog/section packages; this is what a
// caller (the CLI, an integration test) plugs in.
type ContainerShadowDB struct {
	image     string
	container *postgres.PostgresContainer
	connStr   string
}

var _ shadowdb.ShadowDB = (*ContainerShadowDB)(nil)

// NewContainerShadowDB returns a ShadowDB that will start a fresh
// postgres:<image> container the first time ConnectionString is called.
func NewContainerShadowDB(image string) *ContainerShadowDB {
	if image == "" {
		image = "postgres:15.3"
	}
	return &ContainerShadowDB{image: image}
}

func (s *ContainerShadowDB) ConnectionString(ctx context.Context) (string, error) {
	if s.container != nil {
		return s.connStr, nil
	}

	waitForLogs := wait.
		ForLog("database system is ready to accept connections").
		WithOccurrence(2).
		WithStartupTimeout(30 * time.Second)

	ctr, err := postgres.RunContainer(ctx,
		testcontainers.WithImage(s.image),
		testcontainers.WithWaitStrategy(waitForLogs),
	)
	if err != nil {
		return "", fmt.Errorf("starting shadow db container: %w", err)
	}

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = ctr.Terminate(ctx)
		return "", fmt.Errorf("reading shadow db connection string: %w", err)
	}

	s.container = ctr
	s.connStr = connStr
	return connStr, nil
}

// Close terminates the container. Safe to call even if
// ConnectionString was never called; cleanup must run unconditionally
// on shutdown.
func (s *ContainerShadowDB) Close(ctx context.Context) error {
	if s.container == nil {
		return nil
	}
	return s.container.Terminate(ctx)
}
