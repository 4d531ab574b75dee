package holdem

import (
	"errors"
	"fmt"
)

// ErrorKind classification of a rejected operation
type ErrorKind int

const (
	KindInvalidCard ErrorKind = 1001 + iota
	KindDuplicateCard
	KindInvalidPhase
	KindInsufficientCards
	KindInsufficientPlayers
	KindInvalidSeat
	KindSeatTaken
	KindInsufficientChips
	KindInsufficientBankroll
	KindPlayerNotFound
	KindTableNotFound
	KindInvalidRequest
	KindInvalidStatus
	KindInvalidBuyIn
	KindAlreadySeated
	KindDeckExhausted
	KindPlayerExists
	KindTableExists
)

var kindNames = map[ErrorKind]string{
	KindInvalidCard:          "invalid_card",
	KindDuplicateCard:        "duplicate_card",
	KindInvalidPhase:         "invalid_phase",
	KindInsufficientCards:    "insufficient_cards",
	KindInsufficientPlayers:  "insufficient_players",
	KindInvalidSeat:          "invalid_seat",
	KindSeatTaken:            "seat_taken",
	KindInsufficientChips:    "insufficient_chips",
	KindInsufficientBankroll: "insufficient_bankroll",
	KindPlayerNotFound:       "player_not_found",
	KindTableNotFound:        "table_not_found",
	KindInvalidRequest:       "invalid_request",
	KindInvalidStatus:        "invalid_status",
	KindInvalidBuyIn:         "invalid_buy_in",
	KindAlreadySeated:        "already_seated",
	KindDeckExhausted:        "deck_exhausted",
	KindPlayerExists:         "player_exists",
	KindTableExists:          "table_exists",
}

func (c ErrorKind) String() string {
	if s, ok := kindNames[c]; ok {
		return s
	}
	return "unknown"
}

// Code numeric error code
func (c ErrorKind) Code() int {
	return int(c)
}

// Status 200/400/404 convention of the transport boundary
func (c ErrorKind) Status() int {
	switch c {
	case KindPlayerNotFound, KindTableNotFound:
		return 404
	}
	return 400
}

// Error every engine failure carries a kind and a human readable message
type Error struct {
	Kind ErrorKind
	Msg  string
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Msg
}

// Is matches any *Error of the same kind, so the sentinels work with errors.Is
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidCard          = &Error{Kind: KindInvalidCard, Msg: "invalid card"}
	ErrDuplicateCard        = &Error{Kind: KindDuplicateCard, Msg: "duplicate cards in hand"}
	ErrInvalidPhase         = &Error{Kind: KindInvalidPhase, Msg: "invalid game phase"}
	ErrInsufficientCards    = &Error{Kind: KindInsufficientCards, Msg: "not enough cards in the deck"}
	ErrInsufficientPlayers  = &Error{Kind: KindInsufficientPlayers, Msg: "not enough players"}
	ErrInvalidSeat          = &Error{Kind: KindInvalidSeat, Msg: "invalid seat number"}
	ErrSeatTaken            = &Error{Kind: KindSeatTaken, Msg: "seat already taken"}
	ErrInsufficientChips    = &Error{Kind: KindInsufficientChips, Msg: "insufficient chips"}
	ErrInsufficientBankroll = &Error{Kind: KindInsufficientBankroll, Msg: "insufficient bankroll"}
	ErrPlayerNotFound       = &Error{Kind: KindPlayerNotFound, Msg: "player not found"}
	ErrTableNotFound        = &Error{Kind: KindTableNotFound, Msg: "table not found"}
	ErrInvalidRequest       = &Error{Kind: KindInvalidRequest, Msg: "invalid request"}
	ErrInvalidStatus        = &Error{Kind: KindInvalidStatus, Msg: "invalid player status"}
	ErrInvalidBuyIn         = &Error{Kind: KindInvalidBuyIn, Msg: "invalid buy-in amount"}
	ErrAlreadySeated        = &Error{Kind: KindAlreadySeated, Msg: "player is already seated"}
	ErrDeckExhausted        = &Error{Kind: KindDeckExhausted, Msg: "deck is exhausted"}
	ErrPlayerExists         = &Error{Kind: KindPlayerExists, Msg: "player already exists"}
	ErrTableExists          = &Error{Kind: KindTableExists, Msg: "table already exists"}
)

// KindOf kind of an engine error, ok is false for foreign errors
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// StatusOf transport status for err: 200 on success, 500 for errors the engine did not raise
func StatusOf(err error) int {
	if err == nil {
		return 200
	}
	if kind, ok := KindOf(err); ok {
		return kind.Status()
	}
	return 500
}
