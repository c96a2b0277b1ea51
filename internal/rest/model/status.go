package model

import (
	"time"

	"github.com/gosimple/slug"

	"github.com/sergeii/servermon/internal/core/entities/snapshot"
)

type Status struct {
	ID         string     `json:"id"`
	Target     string     `json:"target"`
	State      string     `json:"state"` // online, offline or checking
	Reason     string     `json:"reason"`
	ReasonSlug string     `json:"reason_slug"`
	Cause      string     `json:"cause"`
	ElapsedMs  *int64     `json:"elapsed_ms"`
	CheckedAt  *time.Time `json:"checked_at"`
	Connected  bool       `json:"connected"`
}

func NewStatusFromDomain(snp snapshot.Snapshot) Status {
	var elapsed *int64
	if ms, ok := snp.Verdict.ElapsedMillis(); ok {
		elapsed = &ms
	}
	var checkedAt *time.Time
	if snp.HasBeenChecked() {
		ts := snp.CheckedAt.UTC()
		checkedAt = &ts
	}
	return Status{
		ID:         snp.ID.String(),
		Target:     snp.Target,
		State:      snp.Verdict.State.String(),
		Reason:     snp.Verdict.Reason,
		ReasonSlug: slug.Make(snp.Verdict.Reason),
		Cause:      string(snp.Verdict.Cause),
		ElapsedMs:  elapsed,
		CheckedAt:  checkedAt,
		Connected:  snp.Connected,
	}
}

type MonitorCommand struct {
	Action string `binding:"required,oneof=refresh pause resume" json:"action"`
}

type Error struct {
	Error string `json:"error"`
}
