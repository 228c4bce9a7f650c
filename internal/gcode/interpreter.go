package gcode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/armkit/armctl/internal/joint"
	"github.com/armkit/armctl/internal/motion"
	"github.com/armkit/armctl/internal/observability"
)

// Interpreter translates command lines into coordinator operations and
// their outcomes into response text. One line in, one result out.
type Interpreter struct {
	parser *Parser
	coord  *motion.Coordinator
	log    zerolog.Logger
}

func NewInterpreter(coord *motion.Coordinator, log zerolog.Logger) *Interpreter {
	return &Interpreter{
		parser: NewParser(coord.Registry().Len()),
		coord:  coord,
		log:    log,
	}
}

// Execute parses and runs one line. Failures never partially apply: a
// malformed line touches no joint, and a rejected multi-move leaves
// every target as it was.
func (it *Interpreter) Execute(line string) Result {
	cmd, err := it.parser.ParseLine(line)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			it.log.Debug().Str("line", strings.TrimSpace(line)).Str("reason", perr.Reason).Msg("command rejected")
			observability.RecordCommand("parse_error", false)
			return resultError(perr.Reason)
		}
		observability.RecordCommand("parse_error", false)
		return resultError(err.Error())
	}

	res := it.dispatch(cmd)
	observability.RecordCommand(commandLabel(cmd.Kind), res.Success)
	return res
}

func (it *Interpreter) dispatch(cmd Command) Result {
	switch cmd.Kind {
	case KindEmpty:
		return resultOK()
	case KindQuickStatus:
		return resultPayload(it.quickStatus())
	case KindMoveAbsolute:
		return it.move(cmd.Targets, it.coord.MoveMultiple)
	case KindMoveRelative:
		return it.move(cmd.Targets, it.coord.MoveRelative)
	case KindHome:
		it.coord.ZeroAll()
		return resultPayload("All joints homed (zeroed)")
	case KindEnable:
		it.coord.SetEnabled(true)
		return resultPayload("Motors enabled")
	case KindDisable:
		it.coord.SetEnabled(false)
		return resultPayload("Motors disabled")
	case KindEmergencyStop:
		it.coord.EmergencyStop()
		return resultPayload("EMERGENCY STOP - Motors disabled")
	case KindPositionReport:
		return resultPayload(it.positionReport())
	case KindSettingsReport:
		return resultPayload(it.settingsReport())
	}
	return resultError("Unknown command")
}

func (it *Interpreter) move(targets joint.Positions, apply func(joint.Positions) error) Result {
	if !targets.Any() {
		return resultError("No joints specified")
	}
	if err := apply(targets); err != nil {
		observability.RecordMoveRejected(rejectionLabel(err))
		return resultError("Move failed - check limits or enable motors")
	}
	return resultOK()
}

// positionReport renders the M114 block: current, target, moving and
// enabled flags.
func (it *Interpreter) positionReport() string {
	reg := it.coord.Registry()
	var b strings.Builder

	b.WriteString("Position:")
	for i := 0; i < reg.Len(); i++ {
		fmt.Fprintf(&b, " J%d:%d", i+1, it.coord.Position(i))
	}

	b.WriteString("\nTarget:")
	for i := 0; i < reg.Len(); i++ {
		fmt.Fprintf(&b, " J%d:%d", i+1, it.coord.Target(i))
	}

	b.WriteString("\nMoving: ")
	b.WriteString(yesNo(it.coord.IsAnyMoving()))
	b.WriteString("\nEnabled: ")
	b.WriteString(yesNo(it.coord.Enabled()))

	return b.String()
}

// settingsReport renders the M503 static configuration block.
func (it *Interpreter) settingsReport() string {
	reg := it.coord.Registry()
	var b strings.Builder
	b.WriteString("Settings:")
	for i := 0; i < reg.Len(); i++ {
		cfg := reg.Config(i)
		fmt.Fprintf(&b, "\n%s Step:%d Dir:%d SPR:%d uStep:%d MaxHz:%d Accel:%d",
			cfg.Name, cfg.StepPin, cfg.DirPin, cfg.StepsPerRev,
			cfg.Microstep, cfg.MaxSpeedHz, cfg.Acceleration)
	}
	return b.String()
}

// quickStatus renders the compact "?" line: enabled/disabled flag,
// moving/idle flag, comma-joined current positions.
func (it *Interpreter) quickStatus() string {
	reg := it.coord.Registry()
	var b strings.Builder

	if it.coord.Enabled() {
		b.WriteByte('E')
	} else {
		b.WriteByte('D')
	}
	if it.coord.IsAnyMoving() {
		b.WriteByte('M')
	} else {
		b.WriteByte('I')
	}

	b.WriteString(" P:")
	for i := 0; i < reg.Len(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", it.coord.Position(i))
	}
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func commandLabel(k Kind) string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindQuickStatus:
		return "status"
	case KindMoveAbsolute:
		return "G0"
	case KindMoveRelative:
		return "G1"
	case KindHome:
		return "G28"
	case KindEnable:
		return "M17"
	case KindDisable:
		return "M18"
	case KindEmergencyStop:
		return "M112"
	case KindPositionReport:
		return "M114"
	case KindSettingsReport:
		return "M503"
	}
	return "unknown"
}

func rejectionLabel(err error) string {
	switch {
	case errors.Is(err, motion.ErrDisabled):
		return "disabled"
	case errors.Is(err, motion.ErrOutOfLimits):
		return "out_of_limits"
	case errors.Is(err, motion.ErrInvalidJoint):
		return "invalid_joint"
	}
	return "other"
}
