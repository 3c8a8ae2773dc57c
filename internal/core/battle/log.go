package battle

import "fmt"

// LogKind classifies a log entry so the UI can pick an animation for it.
type LogKind string

const (
	LogCardPlayed    LogKind = "card_played"
	LogDamage        LogKind = "damage"
	LogMiss          LogKind = "miss"
	LogHeal          LogKind = "heal"
	LogBlock         LogKind = "block"
	LogStatusApplied LogKind = "status_applied"
	LogStatusRemoved LogKind = "status_removed"
	LogKO            LogKind = "ko"
	LogRevive        LogKind = "revive"
	LogTurnStart     LogKind = "turn_start"
	LogTurnEnd       LogKind = "turn_end"
	LogTurnSkipped   LogKind = "turn_skipped"
	LogRound         LogKind = "round"
	LogSwitch        LogKind = "switch"
	LogEnergy        LogKind = "energy"
	LogDraw          LogKind = "draw"
	LogEvolve        LogKind = "evolve"
	LogBattleEnd     LogKind = "battle_end"
	LogInfo          LogKind = "info"
)

// LogEntry is one human-readable line of the battle log. CombatantID names
// the combatant the entry is about, when there is one.
type LogEntry struct {
	Message     string  `msgpack:"message"`
	CombatantID string  `msgpack:"combatant_id"`
	Kind        LogKind `msgpack:"kind"`
}

func (b *Battle) logf(kind LogKind, combatantID, format string, args ...any) {
	b.state.Log = append(b.state.Log, LogEntry{
		Message:     fmt.Sprintf(format, args...),
		CombatantID: combatantID,
		Kind:        kind,
	})
}
