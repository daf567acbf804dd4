package webkit

import (
	"context"
	"math"

	"github.com/bnema/feedwall/internal/logging"
)

// Action is a window-level command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionZoomIn
	ActionZoomOut
	ActionZoomReset
	ActionToggleMute
	ActionTogglePinned
	ActionSwapSecondary
	ActionVolumeUp
	ActionVolumeDown
)

// String returns the action name used in logs.
func (a Action) String() string {
	switch a {
	case ActionZoomIn:
		return "zoom-in"
	case ActionZoomOut:
		return "zoom-out"
	case ActionZoomReset:
		return "zoom-reset"
	case ActionToggleMute:
		return "toggle-mute"
	case ActionTogglePinned:
		return "toggle-pinned"
	case ActionSwapSecondary:
		return "swap-secondary"
	case ActionVolumeUp:
		return "volume-up"
	case ActionVolumeDown:
		return "volume-down"
	default:
		return "none"
	}
}

// GDK keysyms for the bound keys.
const (
	keyPlus       uint = 0x02b
	keyEqual      uint = 0x03d
	keyMinus      uint = 0x02d
	key0          uint = 0x030
	keyM          uint = 0x06d
	keyP          uint = 0x070
	keyS          uint = 0x073
	keyUp         uint = 0xff52
	keyDown       uint = 0xff54
	keyKPAdd      uint = 0xffab
	keyKPSubtract uint = 0xffad
	keyKP0        uint = 0xffb0
)

// volumeStep is the volume change of one volume-up/down press.
const volumeStep = 0.1

// ActionForKey maps a key press to an action. Every binding needs Ctrl.
func ActionForKey(keyval uint, ctrl bool) Action {
	if !ctrl {
		return ActionNone
	}
	switch keyval {
	case keyPlus, keyEqual, keyKPAdd:
		return ActionZoomIn
	case keyMinus, keyKPSubtract:
		return ActionZoomOut
	case key0, keyKP0:
		return ActionZoomReset
	case keyM, keyM - 0x20:
		return ActionToggleMute
	case keyP, keyP - 0x20:
		return ActionTogglePinned
	case keyS, keyS - 0x20:
		return ActionSwapSecondary
	case keyUp:
		return ActionVolumeUp
	case keyDown:
		return ActionVolumeDown
	}
	return ActionNone
}

// Dispatch runs an action against the use cases. It reports whether the
// action was handled.
func Dispatch(ctx context.Context, action Action, deps HostDeps) bool {
	switch action {
	case ActionZoomIn:
		deps.Controls.StepZoom(ctx, 1)
	case ActionZoomOut:
		deps.Controls.StepZoom(ctx, -1)
	case ActionZoomReset:
		deps.Controls.ResetZoom(ctx)
	case ActionToggleMute:
		deps.Controls.ToggleMute(ctx)
	case ActionTogglePinned:
		deps.Controls.TogglePinned(ctx)
	case ActionSwapSecondary:
		deps.Arranger.SwapMainWithSecondary(ctx)
	case ActionVolumeUp:
		deps.Controls.SetVolume(ctx, stepVolume(deps.Controls.Controls().Volume, 1))
	case ActionVolumeDown:
		deps.Controls.SetVolume(ctx, stepVolume(deps.Controls.Controls().Volume, -1))
	default:
		return false
	}
	logging.FromContext(ctx).Debug().Str("action", action.String()).Msg("shortcut")
	return true
}

func stepVolume(v float64, dir int) float64 {
	return math.Round((v+float64(dir)*volumeStep)*10) / 10
}
