package world

// Transaction records one movement of money with its stated reason.
type Transaction struct {
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

// Ledger is the colony's money account. Action costs are charged here
// unconditionally at roll time; effect appliers credit or debit it for
// outcomes. The ledger may go negative only by explicit design choices
// upstream — Change never rejects.
type Ledger struct {
	balance int
	log     []Transaction
}

// NewLedger returns a Ledger opened with the given starting balance.
func NewLedger(starting int) *Ledger {
	return &Ledger{balance: starting}
}

// Change applies a signed amount with a reason and records the transaction.
//
// Precondition: reason must be non-empty.
// Postcondition: Get() reflects the new balance; the transaction is appended.
func (l *Ledger) Change(amount int, reason string) {
	if reason == "" {
		panic("world: Ledger.Change precondition violated: reason must be non-empty")
	}
	l.balance += amount
	l.log = append(l.log, Transaction{Amount: amount, Reason: reason})
}

// Get returns the current balance.
func (l *Ledger) Get() int { return l.balance }

// Transactions returns a copy of the transaction log.
func (l *Ledger) Transactions() []Transaction {
	cp := make([]Transaction, len(l.log))
	copy(cp, l.log)
	return cp
}
