package world

// PriceTable tracks per-action-type costs with the escalating-cost
// rule: each attempt in a turn doubles the next attempt's price, so a
// risky action cannot be repeated indefinitely within one turn. Turn
// boundaries reset every price to its base.
type PriceTable struct {
	base    map[string]int
	current map[string]int
}

// NewPriceTable returns an empty table.
func NewPriceTable() *PriceTable {
	return &PriceTable{
		base:    make(map[string]int),
		current: make(map[string]int),
	}
}

// SetBase registers the base price for an action type and resets its
// current price to base.
//
// Precondition: actionType must be non-empty; price >= 0.
func (p *PriceTable) SetBase(actionType string, price int) {
	if actionType == "" {
		panic("world: PriceTable.SetBase precondition violated: actionType must be non-empty")
	}
	if price < 0 {
		panic("world: PriceTable.SetBase precondition violated: price must be >= 0")
	}
	p.base[actionType] = price
	p.current[actionType] = price
}

// EnsureBase registers the base price for an action type unless one is
// already registered. A world restored mid-turn keeps its escalated
// current prices; a fresh world gets current == base.
//
// Precondition: actionType must be non-empty; price >= 0.
func (p *PriceTable) EnsureBase(actionType string, price int) {
	if _, ok := p.base[actionType]; ok {
		return
	}
	p.SetBase(actionType, price)
}

// Current returns the price the next attempt of actionType will charge.
// Unregistered types cost zero.
func (p *PriceTable) Current(actionType string) int {
	return p.current[actionType]
}

// Double doubles the current price of actionType for the rest of the
// turn. Called once per attempt, after the cost is charged.
func (p *PriceTable) Double(actionType string) {
	if cur, ok := p.current[actionType]; ok {
		p.current[actionType] = cur * 2
	}
}

// ResetTurn restores every current price to its base. Called by the
// turn-management layer at each turn boundary.
func (p *PriceTable) ResetTurn() {
	for k, v := range p.base {
		p.current[k] = v
	}
}
