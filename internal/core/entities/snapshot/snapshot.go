package snapshot

import (
	"time"

	"github.com/google/uuid"

	"github.com/sergeii/servermon/internal/core/entities/verdict"
)

// Snapshot is what the presentation layer gets after every verdict change.
type Snapshot struct {
	ID        uuid.UUID
	Target    string
	Verdict   verdict.Verdict
	CheckedAt time.Time // zero until the first probe is classified
	Connected bool
}

var Blank Snapshot // nolint: gochecknoglobals

func New(
	id uuid.UUID,
	target string,
	v verdict.Verdict,
	checkedAt time.Time,
	connected bool,
) Snapshot {
	return Snapshot{
		ID:        id,
		Target:    target,
		Verdict:   v,
		CheckedAt: checkedAt,
		Connected: connected,
	}
}

func (s Snapshot) HasBeenChecked() bool {
	return !s.CheckedAt.IsZero()
}
