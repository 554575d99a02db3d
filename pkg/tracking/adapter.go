// SPDX-License-Identifier: Apache-2.0

package tracking

import (
	"context"
	"time"

	"github.com/gdpotter/pgmt/pkg/section"
)

// SectionTracker adapts a SectionStore to pkg/section's Tracker
// interface, translating between the two packages' independent status
// enums so neither package has to import the other's concrete type.
type SectionTracker struct {
	Store *SectionStore
}

var _ section.Tracker = SectionTracker{}

func (t SectionTracker) Status(ctx context.Context, version uint64, sectionName string) (section.SectionTrackedStatus, error) {
	status, err := t.Store.Status(ctx, version, sectionName)
	if err != nil {
		return 0, err
	}
	return toTrackedStatus(status), nil
}

func (t SectionTracker) RecordStart(ctx context.Context, version uint64, sectionName string) error {
	return t.Store.RecordStart(ctx, version, sectionName)
}

func (t SectionTracker) RecordComplete(ctx context.Context, version uint64, sectionName string, rowsAffected int64, duration time.Duration) error {
	return t.Store.RecordComplete(ctx, version, sectionName, rowsAffected, duration)
}

func (t SectionTracker) RecordFailed(ctx context.Context, version uint64, sectionName string, lastErr string) error {
	return t.Store.RecordFailed(ctx, version, sectionName, lastErr)
}

func toTrackedStatus(s SectionStatus) section.SectionTrackedStatus {
	switch s {
	case SectionRunning:
		return section.TrackedRunning
	case SectionCompleted:
		return section.TrackedCompleted
	case SectionFailed:
		return section.TrackedFailed
	default:
		return section.TrackedPending
	}
}
