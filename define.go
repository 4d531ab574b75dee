package holdem

import "strings"

// Phase street of the hand in flight
type Phase int8

const (
	PhaseNone Phase = iota
	PhasePreFlop
	PhaseFlop
	PhaseTurn
	PhaseRiver
)

func (c Phase) String() string {
	switch c {
	case PhaseNone:
		return "none"
	case PhasePreFlop:
		return "pre-flop"
	case PhaseFlop:
		return "flop"
	case PhaseTurn:
		return "turn"
	case PhaseRiver:
		return "river"
	}
	return "unknown"
}

func (c Phase) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Phase) UnmarshalText(b []byte) error {
	for v := PhaseNone; v <= PhaseRiver; v++ {
		if v.String() == string(b) {
			*c = v
			return nil
		}
	}
	return newError(KindInvalidRequest, "unknown phase %q", b)
}

// PlayerStatus standing -> sitting -> playing <-> sitting out -> standing
type PlayerStatus int8

const (
	StatusStanding PlayerStatus = iota
	StatusSitting
	StatusPlaying
	StatusSittingOut
)

func (c PlayerStatus) String() string {
	switch c {
	case StatusStanding:
		return "standing"
	case StatusSitting:
		return "sitting"
	case StatusPlaying:
		return "playing"
	case StatusSittingOut:
		return "sitting out"
	}
	return "unknown"
}

func (c PlayerStatus) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *PlayerStatus) UnmarshalText(b []byte) error {
	for v := StatusStanding; v <= StatusSittingOut; v++ {
		if v.String() == string(b) {
			*c = v
			return nil
		}
	}
	return newError(KindInvalidRequest, "unknown player status %q", b)
}

type ActionDef int8

const (
	ActionDefNone ActionDef = iota
	ActionDefAnte
	ActionDefSB
	ActionDefBB
	ActionDefBet
	ActionDefCall
	ActionDefFold
	ActionDefCheck
	ActionDefRaise
	ActionDefAllIn
)

func (c ActionDef) String() string {
	switch c {
	case ActionDefAnte:
		return "ante"
	case ActionDefSB:
		return "small blind"
	case ActionDefBB:
		return "big blind"
	case ActionDefBet:
		return "bet"
	case ActionDefCall:
		return "call"
	case ActionDefFold:
		return "fold"
	case ActionDefCheck:
		return "check"
	case ActionDefRaise:
		return "raise"
	case ActionDefAllIn:
		return "all-in"
	default:
		return "none"
	}
}

func (c ActionDef) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts every name String emits, blinds and antes included
func (c *ActionDef) UnmarshalText(b []byte) error {
	for v := ActionDefNone; v <= ActionDefAllIn; v++ {
		if v.String() == string(b) {
			*c = v
			return nil
		}
	}
	return newError(KindInvalidRequest, "unknown action %q", b)
}

// ParseAction player facing actions only, blinds and antes are posted by the table
func ParseAction(s string) (ActionDef, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold":
		return ActionDefFold, nil
	case "check":
		return ActionDefCheck, nil
	case "call":
		return ActionDefCall, nil
	case "bet":
		return ActionDefBet, nil
	case "raise":
		return ActionDefRaise, nil
	case "all-in", "allin", "all_in":
		return ActionDefAllIn, nil
	}
	return ActionDefNone, newError(KindInvalidRequest, "unknown action %q", s)
}
