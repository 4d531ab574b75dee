package holdem

// Recorder receives every state change of a hand, in order
type Recorder interface {
	Begin(table string, hand uint)
	Blind(table string, player string, action ActionDef, amount int)
	Deal(table string, player string, cards [2]Card)
	Reveal(table string, phase Phase, burn Card, cards []Card)
	Action(table string, phase Phase, player string, action ActionDef, amount int)
	End(table string, result *ShowdownResult)
}

type nopRecorder struct {
}

func newNopRecorder() Recorder {
	return &nopRecorder{}
}

var _ Recorder = (*nopRecorder)(nil)

func (c *nopRecorder) Begin(string, uint) {}

func (c *nopRecorder) Blind(string, string, ActionDef, int) {}

func (c *nopRecorder) Deal(string, string, [2]Card) {}

func (c *nopRecorder) Reveal(string, Phase, Card, []Card) {}

func (c *nopRecorder) Action(string, Phase, string, ActionDef, int) {}

func (c *nopRecorder) End(string, *ShowdownResult) {}
