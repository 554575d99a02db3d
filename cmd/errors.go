// SPDX-License-Identifier: Apache-2.0

package cmd

import "errors"

// errNotInitialized is returned by commands that require the tracking
// tables to already exist.
var errNotInitialized = errors.New("pgmt is not initialized, run 'pgmt init' to initialize")

// ErrDifferencesFound is returned by diffCmd when the target and
// desired catalogs disagree, so main can map it to exit code 1, distinct
// from a generic execution error.
var ErrDifferencesFound = errors.New("differences found between target and desired schema")

// ErrDestructiveBlocked is mapped by main to exit code 2. No command in
// this package returns it and no --allow-destructive flag is registered,
// so plans that contain drop steps are not blocked.
var ErrDestructiveBlocked = errors.New("destructive changes blocked: pass --allow-destructive to proceed")
