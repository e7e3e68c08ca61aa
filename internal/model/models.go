// Package model defines the data models for the party score tracker.
package model

import "time"

// RuleSet selects the points and bonus policy for a group.
// It is fixed at group creation and never changes afterwards.
type RuleSet string

const (
	RuleSetClassic  RuleSet = "classic"
	RuleSetProBonus RuleSet = "pro_bonus"
)

// Valid reports whether rs is one of the known rule sets.
func (rs RuleSet) Valid() bool {
	return rs == RuleSetClassic || rs == RuleSetProBonus
}

// LeagueStatus tracks whether a group's league is still accepting matches.
type LeagueStatus string

const (
	LeagueActive    LeagueStatus = "active"
	LeagueFinalized LeagueStatus = "finalized"
)

// MemberKind distinguishes human players from CPU placeholders.
// CPU members hold results but never vote.
type MemberKind string

const (
	MemberHuman MemberKind = "human"
	MemberCPU   MemberKind = "cpu"
)

// MemberStatus tracks group membership. Members are never hard-deleted
// while referenced by historical matches; leaving flips the status.
type MemberStatus string

const (
	MemberActive MemberStatus = "active"
	MemberLeft   MemberStatus = "left"
)

// MatchStatus is the approval lifecycle state of a submitted match.
// Approved and rejected are terminal.
type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchApproved MatchStatus = "approved"
	MatchRejected MatchStatus = "rejected"
)

// Terminal reports whether the status admits no further transitions.
func (s MatchStatus) Terminal() bool {
	return s == MatchApproved || s == MatchRejected
}

// Vote is a human member's ballot on a pending match.
type Vote string

const (
	VoteApprove Vote = "approve"
	VoteReject  Vote = "reject"
)

// Valid reports whether v is a known ballot value.
func (v Vote) Valid() bool {
	return v == VoteApprove || v == VoteReject
}

// BonusKind identifies an end-of-league bonus category.
type BonusKind string

const (
	BonusMostWins  BonusKind = "most_wins"
	BonusMostStars BonusKind = "most_stars"
	BonusMostCoins BonusKind = "most_coins"
)

// Group owns members, matches and bonuses, plus the rule-set selection
// and the league lifecycle flag.
type Group struct {
	ID           int64        `db:"id"`
	Name         string       `db:"name"`
	RuleSet      RuleSet      `db:"rule_set"`
	LeagueStatus LeagueStatus `db:"league_status"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

// Member is a player identity within a group. Humans are linked to an
// external account through AccountID; CPUs are not.
type Member struct {
	ID          int64        `db:"id"`
	GroupID     int64        `db:"group_id"`
	Kind        MemberKind   `db:"kind"`
	DisplayName string       `db:"display_name"`
	AccountID   *int64       `db:"account_id"`
	Status      MemberStatus `db:"status"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

// IsActiveHuman reports whether the member is an active human and thus
// eligible to vote on the group's matches.
func (m *Member) IsActiveHuman() bool {
	return m.Kind == MemberHuman && m.Status == MemberActive
}

// Match is one recorded game instance. Status is mutated only through the
// vote path; a match in a terminal status is immutable.
type Match struct {
	ID          int64       `db:"id"`
	GroupID     int64       `db:"group_id"`
	MapID       int64       `db:"map_id"`
	PlayedAt    time.Time   `db:"played_at"`
	Status      MatchStatus `db:"status"`
	SubmitterID int64       `db:"submitter_id"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`

	Results []Result `db:"-"`
}

// Result is one participating member's recorded performance within a match.
// Stars, coins, minigames won and showdown wins are the fixed metric schema,
// in ranking priority order. Standing and Points are computed at submission
// and never edited afterwards.
type Result struct {
	ID           int64 `db:"id"`
	MatchID      int64 `db:"match_id"`
	MemberID     int64 `db:"member_id"`
	Stars        int   `db:"stars"`
	Coins        int   `db:"coins"`
	MinigamesWon int   `db:"minigames_won"`
	ShowdownWins int   `db:"showdown_wins"`
	Standing     int   `db:"standing"`
	Points       int   `db:"points"`
}

// Approval is a single member's ballot on a match. At most one row exists
// per (match, member); re-voting replaces the previous ballot.
type Approval struct {
	MatchID   int64     `db:"match_id"`
	MemberID  int64     `db:"member_id"`
	Vote      Vote      `db:"vote"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Bonus is an end-of-league award created once by the finalizer under the
// pro_bonus rule set. Never mutated.
type Bonus struct {
	ID        int64     `db:"id"`
	GroupID   int64     `db:"group_id"`
	MemberID  int64     `db:"member_id"`
	Kind      BonusKind `db:"kind"`
	Points    int       `db:"points"`
	CreatedAt time.Time `db:"created_at"`
}
