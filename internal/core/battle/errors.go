package battle

import "errors"

// Intent-validation errors. A rejected intent leaves the battle state
// exactly as it was; callers match with errors.Is and surface the reason.
var (
	ErrNotYourTurn        = errors.New("not the acting combatant's turn")
	ErrUnknownCard        = errors.New("card not in hand")
	ErrInsufficientEnergy = errors.New("not enough energy")
	ErrInvalidTarget      = errors.New("invalid target")
	ErrNoValidTargets     = errors.New("no valid targets")
	ErrIllegalSwitch      = errors.New("illegal switch")
	ErrBattleEnded        = errors.New("battle already ended")
)
