// Package battle implements the turn-based battle engine: two rosters, action
// resolution and the phase state machine that decides victory or defeat.
//
// A Battle is stepped by a driver. During PhaseAlly the driver supplies one
// Action per living ally through Act; every other non-terminal phase is run
// with Advance. A Battle is not safe for concurrent use.
package battle

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
	"github.com/cory-johannsen/skirmish/internal/game/magic"
)

// DefaultDefeatQuorum is how many defeated members break a roster unless configured otherwise.
const DefaultDefeatQuorum = 2

// Side names one of the two rosters.
type Side int

const (
	SideAllies Side = iota
	SideOpponents
)

// String returns "allies" or "opponents".
func (s Side) String() string {
	switch s {
	case SideAllies:
		return "allies"
	case SideOpponents:
		return "opponents"
	default:
		return "unknown"
	}
}

// Foe returns the opposing side.
func (s Side) Foe() Side {
	if s == SideAllies {
		return SideOpponents
	}
	return SideAllies
}

// Phase is a state of the battle state machine:
//
//	PhaseAlly -> PhaseCheckVictory -> PhaseOpponent -> PhaseCheckDefeat -> PhaseAlly ...
//
// PhaseVictory and PhaseDefeat are terminal.
type Phase int

const (
	PhaseAlly Phase = iota
	PhaseCheckVictory
	PhaseOpponent
	PhaseCheckDefeat
	PhaseVictory
	PhaseDefeat
)

// String returns a human-readable phase label.
func (p Phase) String() string {
	switch p {
	case PhaseAlly:
		return "ally_phase"
	case PhaseCheckVictory:
		return "check_victory"
	case PhaseOpponent:
		return "opponent_phase"
	case PhaseCheckDefeat:
		return "check_defeat"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the battle is over.
func (p Phase) IsTerminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

// Termination is the result of checking one roster.
type Termination int

const (
	Ongoing Termination = iota
	RosterBroken
)

// String returns "ongoing" or "roster_broken".
func (t Termination) String() string {
	if t == RosterBroken {
		return "roster_broken"
	}
	return "ongoing"
}

// Roster is one side's characters in fixed turn order.
type Roster []*character.Character

// Defeated counts members at zero health.
func (r Roster) Defeated() int {
	n := 0
	for _, c := range r {
		if c.IsDefeated() {
			n++
		}
	}
	return n
}

// Living returns the non-defeated members with their stable roster indices.
func (r Roster) Living() []Target {
	var out []Target
	for i, c := range r {
		if !c.IsDefeated() {
			out = append(out, Target{Index: i, Character: c})
		}
	}
	return out
}

// CheckTermination reports RosterBroken when at least quorum members of r are defeated.
//
// Precondition: quorum >= 1.
func CheckTermination(r Roster, quorum int) Termination {
	if r.Defeated() >= quorum {
		return RosterBroken
	}
	return Ongoing
}

// Target pairs a character with its stable roster index.
type Target struct {
	Index     int
	Character *character.Character
}

// Options configures a Battle.
type Options struct {
	// ID identifies the battle in logs. Empty generates a UUID.
	ID string
	// DefeatQuorum is how many defeated members break a roster. Zero means DefaultDefeatQuorum.
	DefeatQuorum int
	// SkipDefeatedTargets makes opponents pick only living allies. The default
	// draws from the whole ally roster, so a blow can land on an ally who is
	// already down and do nothing.
	SkipDefeatedTargets bool
	// Source supplies every random draw. Required.
	Source dice.Source
	// Logger receives outcome and phase logs. Nil disables logging.
	Logger *zap.Logger
	// Observers are notified of each outcome and of the final result.
	Observers []Observer
}

// Battle is a single battle between allies and opponents.
type Battle struct {
	id           string
	allies       Roster
	opponents    Roster
	quorum       int
	skipDefeated bool
	src          dice.Source
	logger       *zap.Logger
	observers    []Observer

	phase  Phase
	round  int
	cursor int
}

// New creates a battle in PhaseAlly of round 1.
//
// Precondition: both rosters are non-empty, contain no nil or shared members,
// and 1 <= quorum <= len(roster) for each roster.
// Postcondition: Returns a Battle owning both rosters, or an error describing every violation.
func New(allies, opponents []*character.Character, opts Options) (*Battle, error) {
	quorum := opts.DefeatQuorum
	if quorum == 0 {
		quorum = DefaultDefeatQuorum
	}

	var errs []error
	if opts.Source == nil {
		errs = append(errs, errors.New("source must not be nil"))
	}
	if err := validateRoster(SideAllies, allies, quorum); err != nil {
		errs = append(errs, err)
	}
	if err := validateRoster(SideOpponents, opponents, quorum); err != nil {
		errs = append(errs, err)
	}
	seen := make(map[*character.Character]bool, len(allies))
	for _, c := range allies {
		seen[c] = true
	}
	for _, c := range opponents {
		if c != nil && seen[c] {
			errs = append(errs, fmt.Errorf("%q is on both sides", c.Name))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("battle: %w", errors.Join(errs...))
	}

	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	b := &Battle{
		id:           id,
		allies:       append(Roster(nil), allies...),
		opponents:    append(Roster(nil), opponents...),
		quorum:       quorum,
		skipDefeated: opts.SkipDefeatedTargets,
		src:          opts.Source,
		logger:       logger.With(zap.String("battle_id", id)),
		observers:    opts.Observers,
		round:        1,
	}
	b.enterAllyPhase()
	b.logger.Info("battle started",
		zap.Int("allies", len(b.allies)),
		zap.Int("opponents", len(b.opponents)),
		zap.Int("defeat_quorum", quorum),
	)
	return b, nil
}

func validateRoster(side Side, r []*character.Character, quorum int) error {
	if len(r) == 0 {
		return fmt.Errorf("%s roster must not be empty", side)
	}
	for i, c := range r {
		if c == nil {
			return fmt.Errorf("%s roster member %d is nil", side, i)
		}
	}
	if quorum < 1 || quorum > len(r) {
		return fmt.Errorf("defeat quorum %d must be in [1, %d] for %s", quorum, len(r), side)
	}
	return nil
}

// ID returns the battle identifier.
func (b *Battle) ID() string { return b.id }

// Phase returns the current phase.
func (b *Battle) Phase() Phase { return b.phase }

// Round returns the current round, starting at 1.
func (b *Battle) Round() int { return b.round }

// DefeatQuorum returns the configured quorum.
func (b *Battle) DefeatQuorum() int { return b.quorum }

// Roster returns a copy of one side's roster. The characters are the live ones.
func (b *Battle) Roster(side Side) Roster {
	return append(Roster(nil), b.roster(side)...)
}

func (b *Battle) roster(side Side) Roster {
	if side == SideAllies {
		return b.allies
	}
	return b.opponents
}

// sideOf locates c in the battle.
func (b *Battle) sideOf(c *character.Character) (Side, int, bool) {
	for i, m := range b.allies {
		if m == c {
			return SideAllies, i, true
		}
	}
	for i, m := range b.opponents {
		if m == c {
			return SideOpponents, i, true
		}
	}
	return 0, 0, false
}

// ListAvailableActions returns the action kinds actor may choose: attack always,
// magic when it owns spells, item when it owns item slots.
func (b *Battle) ListAvailableActions(actor *character.Character) []ActionKind {
	actions := []ActionKind{ActionAttack}
	if actor.HasSpells() {
		actions = append(actions, ActionMagic)
	}
	if actor.HasItems() {
		actions = append(actions, ActionItem)
	}
	return actions
}

// ListSpells returns actor's spells in selection order.
func (b *Battle) ListSpells(actor *character.Character) []*magic.Spell {
	return actor.Spells()
}

// ListItems returns a snapshot of actor's item slots in selection order.
func (b *Battle) ListItems(actor *character.Character) []inventory.ItemSlot {
	return actor.Items()
}

// ListLivingTargets returns the living members of side with the indices a
// caller must echo back in a Selection.
func (b *Battle) ListLivingTargets(side Side) []Target {
	return b.roster(side).Living()
}

// CheckTermination checks one of this battle's rosters against its quorum.
func (b *Battle) CheckTermination(side Side) Termination {
	return CheckTermination(b.roster(side), b.quorum)
}
