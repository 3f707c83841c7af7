package console

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/skirmish/internal/game/battle"
	"github.com/cory-johannsen/skirmish/internal/game/character"
)

// Bar widths, in cells, for the roster table.
const (
	AllyHealthBarWidth     = 25
	AllyManaBarWidth       = 10
	OpponentHealthBarWidth = 50
)

// Bar draws a meter of width cells filled in proportion to cur/total, rounding
// any partial cell up so a living character never shows an empty bar.
//
// Precondition: width > 0.
func Bar(cur, total, width int) string {
	filled := 0
	if total > 0 && cur > 0 {
		filled = (cur*width + total - 1) / total
	}
	filled = min(filled, width)
	return strings.Repeat("█", filled) + strings.Repeat(" ", width-filled)
}

// RenderRosters formats both rosters as a status table: allies with health
// and mana bars, opponents with a wider health bar.
func RenderRosters(allies, opponents battle.Roster) string {
	nameWidth := 0
	for _, c := range append(append(battle.Roster{}, allies...), opponents...) {
		nameWidth = max(nameWidth, len(c.Name))
	}

	var b strings.Builder
	b.WriteString(Colorize(Bold, fmt.Sprintf("%-*s  %11s   %-*s  %7s", nameWidth, "NAME", "HP", AllyHealthBarWidth, "", "MP")))
	b.WriteString("\n")
	for _, c := range allies {
		b.WriteString(fmt.Sprintf("%s  %11s  |%s|  %7s  |%s|\n",
			Colorf(Bold, "%-*s", nameWidth, c.Name),
			fmt.Sprintf("%d/%d", c.Health(), c.MaxHealth()),
			Colorize(BrightGreen, Bar(c.Health(), c.MaxHealth(), AllyHealthBarWidth)),
			fmt.Sprintf("%d/%d", c.Mana(), c.MaxMana()),
			Colorize(BrightBlue, Bar(c.Mana(), c.MaxMana(), AllyManaBarWidth)),
		))
	}
	b.WriteString("\n")
	for _, c := range opponents {
		b.WriteString(fmt.Sprintf("%s  %11s  |%s|\n",
			Colorf(Bold, "%-*s", nameWidth, c.Name),
			fmt.Sprintf("%d/%d", c.Health(), c.MaxHealth()),
			Colorize(BrightRed, Bar(c.Health(), c.MaxHealth(), OpponentHealthBarWidth)),
		))
	}
	return b.String()
}

// RenderActions lists the action menu for actor, numbered from 1.
func RenderActions(actor *character.Character, kinds []battle.ActionKind) string {
	var b strings.Builder
	b.WriteString("\n    " + Colorize(Bold, actor.Name) + "\n")
	b.WriteString("    " + Colorize(BrightBlue+Bold, "ACTIONS") + "\n")
	for i, k := range kinds {
		b.WriteString(fmt.Sprintf("        %d. %s\n", i+1, actionLabel(k)))
	}
	return b.String()
}

func actionLabel(k battle.ActionKind) string {
	switch k {
	case battle.ActionAttack:
		return "Attack"
	case battle.ActionMagic:
		return "Magic"
	case battle.ActionItem:
		return "Items"
	default:
		return k.String()
	}
}

// RenderSpells lists actor's spells with their costs, numbered from 1.
func RenderSpells(actor *character.Character) string {
	var b strings.Builder
	b.WriteString("\n    " + Colorize(BrightBlue+Bold, "MAGIC") + "\n")
	for i, s := range actor.Spells() {
		line := fmt.Sprintf("        %d. %s (cost: %d)", i+1, s.Name, s.Cost)
		if !actor.CanAfford(s.Cost) {
			line = Colorize(Dim, line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// RenderItems lists actor's item slots with remaining quantities, numbered from 1.
func RenderItems(actor *character.Character) string {
	var b strings.Builder
	b.WriteString("\n    " + Colorize(BrightGreen+Bold, "ITEMS") + "\n")
	for i, slot := range actor.Items() {
		line := fmt.Sprintf("        %d. %s: %s (x%d)", i+1, slot.Item.Name, slot.Item.Description, slot.Quantity)
		if slot.Empty() {
			line = Colorize(Dim, line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// RenderTargets lists living targets, numbered from 1 in roster order.
func RenderTargets(targets []battle.Target) string {
	var b strings.Builder
	b.WriteString("\n    " + Colorize(BrightRed+Bold, "TARGET") + "\n")
	for i, t := range targets {
		b.WriteString(fmt.Sprintf("        %d. %s\n", i+1, t.Character.Name))
	}
	return b.String()
}

// RenderOutcome formats one resolved action.
func RenderOutcome(o battle.Outcome) string {
	color := BrightRed
	switch {
	case o.Status == battle.StatusInsufficientResource:
		color = Dim
	case o.ActorSide == battle.SideAllies && o.Kind == battle.ActionMagic:
		color = BrightBlue
	case o.ActorSide == battle.SideAllies && o.Item != nil && !o.HasTarget():
		color = BrightGreen
	case o.ActorSide == battle.SideAllies:
		color = BrightYellow
	}
	text := Colorize(color, o.Narrative)
	if o.TargetDefeated {
		text += " " + Colorf(Bold, "%s is down!", o.Target.Name)
	}
	if o.Flavor != "" {
		text += "\n    " + Colorize(BrightMagenta, o.Flavor)
	}
	return text
}

// RenderResult formats the end of the battle.
func RenderResult(result battle.Phase, round int) string {
	switch result {
	case battle.PhaseVictory:
		return Colorf(BrightGreen+Bold, "You win! (round %d)", round)
	case battle.PhaseDefeat:
		return Colorf(BrightRed+Bold, "Your enemies have defeated you! (round %d)", round)
	default:
		return Colorf(Dim, "The battle was abandoned in round %d.", round)
	}
}
