package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sirupsen/logrus"

	"github.com/davidmovas/pokespire/internal/core/battle"
	"github.com/davidmovas/pokespire/internal/enemy/ai"
	"github.com/davidmovas/pokespire/internal/world/grid"
	"github.com/davidmovas/pokespire/pkg/persist"
)

const logLines = 8

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	cellStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(20)
	activeCell  = cellStyle.BorderForeground(lipgloss.Color("212"))
	targetCell  = cellStyle.BorderForeground(lipgloss.Color("196"))
	emptyCell   = cellStyle.Faint(true)
	handStyle   = lipgloss.NewStyle().Padding(0, 1)
	pickedStyle = handStyle.Bold(true).Foreground(lipgloss.Color("212"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type uiMode int

const (
	modeIdle uiMode = iota
	modePickTarget
	modePickSwitch
	modeDone
)

type model struct {
	b    *battle.Battle
	ai   ai.Controller
	repo persist.ReplayRepository
	log  *logrus.Logger

	mode       uiMode
	pickedCard int
	candidates []grid.Occupant
	switches   []grid.Position
	cursor     int
	status     string
	saved      bool
	width      int
}

func newModel(b *battle.Battle, controller ai.Controller, repo persist.ReplayRepository, log *logrus.Logger) *model {
	return &model{
		b:          b,
		ai:         controller,
		repo:       repo,
		log:        log,
		pickedCard: -1,
		width:      100,
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "q" || key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode == modeDone {
		return m, nil
	}

	switch m.mode {
	case modePickTarget, modePickSwitch:
		switch key {
		case "left", "h":
			m.moveCursor(-1)
		case "right", "l", "tab":
			m.moveCursor(1)
		case "enter":
			m.confirm()
		case "esc":
			m.reset("")
		}
	default:
		switch key {
		case "e":
			if err := m.b.EndTurn(); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.afterIntent()
		case "s":
			m.switches = m.b.ValidSwitches()
			if len(m.switches) == 0 {
				m.status = "nowhere to switch"
				return m, nil
			}
			m.mode = modePickSwitch
			m.cursor = 0
			m.status = "pick a cell to switch into"
		default:
			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				m.pickCard(int(key[0] - '1'))
			}
		}
	}
	return m, nil
}

func (m *model) moveCursor(delta int) {
	size := len(m.candidates)
	if m.mode == modePickSwitch {
		size = len(m.switches)
	}
	if size == 0 {
		return
	}
	m.cursor = (m.cursor + delta + size) % size
}

func (m *model) pickCard(index int) {
	c := m.b.Current()
	if c == nil || index >= len(c.Piles.Hand) {
		m.status = "no such card"
		return
	}
	ts, err := m.b.ValidTargets(index)
	if err != nil {
		m.status = err.Error()
		return
	}
	if len(ts.Candidates) == 0 {
		m.status = "no valid targets"
		return
	}
	if ts.RequiresSelection {
		m.pickedCard = index
		m.candidates = ts.Candidates
		m.cursor = 0
		m.mode = modePickTarget
		m.status = "pick a target"
		return
	}
	if err := m.b.PlayCard(index, ""); err != nil {
		m.status = err.Error()
		return
	}
	m.afterIntent()
}

func (m *model) confirm() {
	var err error
	switch m.mode {
	case modePickTarget:
		err = m.b.PlayCard(m.pickedCard, m.candidates[m.cursor].ID)
	case modePickSwitch:
		err = m.b.SwitchPosition(m.switches[m.cursor])
	}
	if err != nil {
		m.reset(err.Error())
		return
	}
	m.reset("")
	m.afterIntent()
}

func (m *model) reset(status string) {
	m.mode = modeIdle
	m.pickedCard = -1
	m.candidates = nil
	m.switches = nil
	m.cursor = 0
	m.status = status
}

// afterIntent lets the AI play out any enemy turns, then saves the replay
// record once the battle is decided.
func (m *model) afterIntent() {
	for m.b.Phase() == battle.PhaseOngoing {
		c := m.b.Current()
		if c == nil || c.Side != grid.SideEnemy {
			break
		}
		if err := m.ai.TakeTurn(m.b); err != nil {
			m.log.WithError(err).Warn("enemy turn")
			break
		}
	}
	if m.b.Phase() != battle.PhaseOngoing {
		m.mode = modeDone
		m.saveReplay()
	}
}

func (m *model) saveReplay() {
	if m.saved {
		return
	}
	record, err := m.b.Record()
	if err != nil {
		m.log.WithError(err).Warn("build replay record")
		return
	}
	if err := m.repo.Save(context.Background(), record); err != nil {
		m.log.WithError(err).Warn("save replay record")
		return
	}
	m.saved = true
	m.status = fmt.Sprintf("replay saved as %s", record.ID)
}

func (m *model) View() string {
	snap := m.b.Snapshot()
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("Pokespire — Round %d", snap.Round)))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderSide(snap, grid.SideEnemy, grid.RowBack))
	sb.WriteString("\n")
	sb.WriteString(m.renderSide(snap, grid.SideEnemy, grid.RowFront))
	sb.WriteString("\n")
	sb.WriteString(m.renderSide(snap, grid.SidePlayer, grid.RowFront))
	sb.WriteString("\n")
	sb.WriteString(m.renderSide(snap, grid.SidePlayer, grid.RowBack))
	sb.WriteString("\n\n")

	if c := snap.Current(); c != nil {
		sb.WriteString(fmt.Sprintf("%s's turn — energy %d/%d\n", c.Name, c.Energy, c.EnergyCap))
		if c.Side == grid.SidePlayer {
			sb.WriteString(m.renderHand(c))
		}
	} else {
		switch snap.Phase {
		case battle.PhaseVictory:
			sb.WriteString(titleStyle.Render(fmt.Sprintf("Victory! %d gold earned", snap.GoldEarned)))
		case battle.PhaseDefeat:
			sb.WriteString(titleStyle.Render("Defeat..."))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.renderLog(snap))
	sb.WriteString("\n")
	if m.status != "" {
		sb.WriteString(statusStyle.Render(m.status))
		sb.WriteString("\n")
	}
	sb.WriteString(faintStyle.Render("1-9 play card · s switch · e end turn · q quit"))
	return sb.String()
}

func (m *model) renderSide(snap *battle.State, side grid.Side, row grid.Row) string {
	cells := make([]string, 0, grid.Columns)
	for col := 0; col < grid.Columns; col++ {
		cells = append(cells, m.renderCell(snap, side, grid.NewPosition(row, col)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m *model) renderCell(snap *battle.State, side grid.Side, pos grid.Position) string {
	var found *battle.Combatant
	for _, c := range snap.Combatants {
		if c.Alive && c.Side == side && c.Pos.Equals(pos) {
			found = c
			break
		}
	}
	if found == nil {
		return emptyCell.Render("—")
	}

	body := fmt.Sprintf("%s\nHP %d/%d", found.Name, found.CurrentHP, found.MaxHP)
	if found.Block > 0 {
		body += fmt.Sprintf("  ⛨%d", found.Block)
	}
	if badges := statusBadges(found); badges != "" {
		body += "\n" + badges
	}

	style := cellStyle
	if c := snap.Current(); c != nil && c.ID == found.ID {
		style = activeCell
	}
	if m.mode == modePickTarget && len(m.candidates) > 0 && m.candidates[m.cursor].ID == found.ID {
		style = targetCell
	}
	return style.Render(body)
}

func statusBadges(c *battle.Combatant) string {
	var parts []string
	for _, in := range c.Statuses.All() {
		parts = append(parts, fmt.Sprintf("%s×%d", in.Kind, in.Stacks))
	}
	return strings.Join(parts, " ")
}

func (m *model) renderHand(c *battle.Combatant) string {
	var parts []string
	for i, id := range c.Piles.Hand {
		mv, err := m.b.Registry().Move(id)
		if err != nil {
			continue
		}
		label := fmt.Sprintf("%d·%s(%d)", i+1, mv.Name, mv.Cost)
		style := handStyle
		if m.mode == modePickTarget && i == m.pickedCard {
			style = pickedStyle
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, " ")
}

func (m *model) renderLog(snap *battle.State) string {
	start := len(snap.Log) - logLines
	if start < 0 {
		start = 0
	}
	var lines []string
	for _, entry := range snap.Log[start:] {
		lines = append(lines, faintStyle.Render(runewidth.Truncate(entry.Message, m.width-2, "…")))
	}
	return strings.Join(lines, "\n")
}
