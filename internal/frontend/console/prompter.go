package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/cory-johannsen/skirmish/internal/game/battle"
)

// Prompter asks a player for each ally decision over a line-oriented stream.
// It implements battle.Decider.
//
// Menu numbers start at 1. Input that is not a listed number is rejected
// locally and asked again; it never reaches the battle.
//
// Lines are read on a separate goroutine so a cancelled context interrupts a
// pending prompt. That goroutine exits when in reaches EOF or fails.
type Prompter struct {
	in        io.Reader
	out       io.Writer
	lastRound int

	start   sync.Once
	lines   chan string
	readErr error
}

// NewPrompter reads answers from in and writes menus to out.
//
// Precondition: in and out must be non-nil.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out, lines: make(chan string)}
}

// readLines feeds p.lines until in is exhausted. readErr is set before the
// channel is closed.
func (p *Prompter) readLines() {
	sc := bufio.NewScanner(p.in)
	for sc.Scan() {
		p.lines <- sc.Text()
	}
	p.readErr = sc.Err()
	close(p.lines)
}

// Decide implements battle.Decider.
func (p *Prompter) Decide(ctx context.Context, turn battle.Turn) (battle.Action, error) {
	b := turn.Battle
	if turn.Round != p.lastRound {
		p.lastRound = turn.Round
		p.printf("\n%s\n", Colorf(Bold, "======== ROUND %d ========", turn.Round))
		p.printf("%s", RenderRosters(b.Roster(battle.SideAllies), b.Roster(battle.SideOpponents)))
	}
	if turn.Retry != nil {
		p.printf("%s\n", Colorize(BrightRed, turn.Retry.Error()))
	}

	kinds := b.ListAvailableActions(turn.Actor)
	p.printf("%s", RenderActions(turn.Actor, kinds))
	k, err := p.choose(ctx, "Choose action", len(kinds))
	if err != nil {
		return battle.Action{}, err
	}

	switch kinds[k] {
	case battle.ActionMagic:
		p.printf("%s", RenderSpells(turn.Actor))
		spell, err := p.choose(ctx, "Choose magic", len(turn.Actor.Spells()))
		if err != nil {
			return battle.Action{}, err
		}
		target, err := p.chooseTarget(ctx, b)
		if err != nil {
			return battle.Action{}, err
		}
		return battle.Cast(spell, target), nil
	case battle.ActionItem:
		items := turn.Actor.Items()
		p.printf("%s", RenderItems(turn.Actor))
		item, err := p.choose(ctx, "Choose item", len(items))
		if err != nil {
			return battle.Action{}, err
		}
		target := battle.NoTarget
		if items[item].Item.Category.TargetsOpponent() {
			if target, err = p.chooseTarget(ctx, b); err != nil {
				return battle.Action{}, err
			}
		}
		return battle.Use(item, target), nil
	default:
		target, err := p.chooseTarget(ctx, b)
		if err != nil {
			return battle.Action{}, err
		}
		return battle.Attack(target), nil
	}
}

// chooseTarget maps a menu number back to a stable roster index.
func (p *Prompter) chooseTarget(ctx context.Context, b *battle.Battle) (int, error) {
	targets := b.ListLivingTargets(battle.SideOpponents)
	p.printf("%s", RenderTargets(targets))
	i, err := p.choose(ctx, "Choose target", len(targets))
	if err != nil {
		return battle.NoTarget, err
	}
	return targets[i].Index, nil
}

// choose reads until it gets a number in [1, n] and returns it zero-based.
func (p *Prompter) choose(ctx context.Context, prompt string, n int) (int, error) {
	p.start.Do(func() { go p.readLines() })
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		p.printf("    %s: ", prompt)
		var line string
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case l, ok := <-p.lines:
			if !ok {
				if p.readErr != nil {
					return 0, fmt.Errorf("reading input: %w", p.readErr)
				}
				return 0, io.EOF
			}
			line = l
		}
		v, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && v >= 1 && v <= n {
			return v - 1, nil
		}
		p.printf("%s\n", Colorf(BrightRed, "Choose a number from 1 to %d.", n))
	}
}

func (p *Prompter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Printer is a battle.Observer writing every outcome and the result to w.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// OnOutcome implements battle.Observer.
func (p *Printer) OnOutcome(o battle.Outcome) string {
	fmt.Fprintln(p.w, RenderOutcome(o))
	return ""
}

// OnEnd implements battle.Observer.
func (p *Printer) OnEnd(result battle.Phase, round int) {
	fmt.Fprintln(p.w, RenderResult(result, round))
}
