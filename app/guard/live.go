package guard

import (
	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/enums"
)

// Inputs provide live values the guard is evaluated on
type Inputs interface {
	SelectedAccountID() string
	BrandSetup() *api.BrandSetup
	Accounts() []api.MetaAccount
}

// Guard binds evaluation to live inputs, each call re-evaluates
type Guard struct {
	in Inputs
}

// New makes a guard over inputs
func New(in Inputs) *Guard { return &Guard{in: in} }

// State evaluates current account state
func (g *Guard) State() AccountState {
	return Evaluate(g.in.SelectedAccountID(), g.in.BrandSetup(), g.in.Accounts())
}

// Check evaluates the action
func (g *Guard) Check(action Action) Result { return Check(g.State(), action) }

// HeaderCTA returns header call to action for the current state
func (g *Guard) HeaderCTA() *HeaderCTA { return CTA(g.State()) }

// IsTabEnabled reports whether the tab can be opened now
func (g *Guard) IsTabEnabled(tab enums.Tab) bool { return IsTabEnabled(g.State(), tab) }

// ShouldFetchAccountStats for the current state
func (g *Guard) ShouldFetchAccountStats() bool { return ShouldFetchAccountStats(g.State()) }

// ShouldFetchTestingBudget for the current state
func (g *Guard) ShouldFetchTestingBudget() bool { return ShouldFetchTestingBudget(g.State()) }

// CanDisplayKnowledgeSection for the current state
func (g *Guard) CanDisplayKnowledgeSection(requiresAccount bool) bool {
	return CanDisplayKnowledgeSection(g.State(), requiresAccount)
}
