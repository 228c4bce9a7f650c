package gcode

import "github.com/armkit/armctl/internal/joint"

// Kind enumerates the closed command set produced by the parser.
// Unknown codes never reach the interpreter; they surface as parse
// errors instead of a fallthrough branch.
type Kind int

const (
	KindEmpty Kind = iota
	KindQuickStatus
	KindMoveAbsolute  // G0
	KindMoveRelative  // G1
	KindHome          // G28
	KindEnable        // M17
	KindDisable       // M18
	KindEmergencyStop // M112
	KindPositionReport
	KindSettingsReport
)

// Command is one parsed line. Targets is only meaningful for the move
// kinds; joints never mentioned in the line stay unset.
type Command struct {
	Kind    Kind
	Targets joint.Positions
}
