package holdem

type extOptions struct {
	gameType string
	blinds   Blinds
	recorder Recorder
	newDeck  func() *Deck
}

type TableOption interface {
	apply(*extOptions)
}

type funcOption struct {
	f func(*extOptions)
}

func newFuncOption(f func(*extOptions)) *funcOption {
	return &funcOption{
		f: f,
	}
}

func (fo *funcOption) apply(do *extOptions) {
	fo.f(do)
}

func defaultOptions() *extOptions {
	return &extOptions{
		gameType: "Texas Hold'em",
		recorder: newNopRecorder(),
		newDeck:  NewDeck,
	}
}

func OptionGameType(gameType string) TableOption {
	return newFuncOption(func(o *extOptions) {
		o.gameType = gameType
	})
}

func OptionBlinds(small, big, ante int) TableOption {
	return newFuncOption(func(o *extOptions) {
		o.blinds = Blinds{Small: small, Big: big, Ante: ante}
	})
}

func OptionCustomRecorder(rc Recorder) TableOption {
	return newFuncOption(func(o *extOptions) {
		if rc != nil {
			o.recorder = rc
		}
	})
}

// OptionDeckSource replaces the shuffled deck, used to replay stacked decks
func OptionDeckSource(f func() *Deck) TableOption {
	return newFuncOption(func(o *extOptions) {
		if f != nil {
			o.newDeck = f
		}
	})
}
