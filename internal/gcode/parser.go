package gcode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/armkit/armctl/internal/joint"
)

// Parser turns one line of text into a typed Command. The command
// letter, the code digits, and the joint specifiers are all scanned
// byte-wise; no partial application occurs on a malformed line.
type Parser struct {
	joints int
}

// NewParser builds a parser that accepts joint numbers 1..joints.
func NewParser(joints int) *Parser {
	return &Parser{joints: joints}
}

// ParseLine parses a single command line. Leading and trailing
// whitespace is stripped; an empty line is the no-op KindEmpty command.
func (p *Parser) ParseLine(line string) (Command, error) {
	cmd := strings.TrimSpace(line)
	if cmd == "" {
		return Command{Kind: KindEmpty}, nil
	}
	if cmd == "?" {
		return Command{Kind: KindQuickStatus}, nil
	}

	letter := upper(cmd[0])

	// The code is the maximal run of digits immediately after the
	// letter. Zero digits means the command is unrecognized.
	numEnd := 1
	for numEnd < len(cmd) && isDigit(cmd[numEnd]) {
		numEnd++
	}
	if numEnd == 1 || (letter != 'G' && letter != 'M') {
		return Command{}, newParseError(ErrUnknownCommand, "Unknown command: "+cmd)
	}
	code, err := strconv.Atoi(cmd[1:numEnd])
	if err != nil {
		return Command{}, newParseError(ErrUnknownCommand, "Unknown command: "+cmd)
	}
	args := strings.TrimSpace(cmd[numEnd:])

	switch letter {
	case 'G':
		switch code {
		case 0:
			targets, ok := p.parseJointTargets(args)
			if !ok {
				return Command{}, newParseError(ErrInvalidJointFormat,
					"Invalid joint format. Use: G0 J1:1000 J2:500")
			}
			return Command{Kind: KindMoveAbsolute, Targets: targets}, nil
		case 1:
			targets, ok := p.parseJointTargets(args)
			if !ok {
				return Command{}, newParseError(ErrInvalidJointFormat, "Invalid joint format")
			}
			return Command{Kind: KindMoveRelative, Targets: targets}, nil
		case 28:
			return Command{Kind: KindHome}, nil
		default:
			return Command{}, newParseError(ErrUnknownCommand,
				fmt.Sprintf("Unknown G-code: G%d", code))
		}
	case 'M':
		switch code {
		case 17:
			return Command{Kind: KindEnable}, nil
		case 18:
			return Command{Kind: KindDisable}, nil
		case 112:
			return Command{Kind: KindEmergencyStop}, nil
		case 114:
			return Command{Kind: KindPositionReport}, nil
		case 503:
			return Command{Kind: KindSettingsReport}, nil
		default:
			return Command{}, newParseError(ErrUnknownCommand,
				fmt.Sprintf("Unknown M-code: M%d", code))
		}
	}
	return Command{}, newParseError(ErrUnknownCommand, "Unknown command: "+cmd)
}

// parseJointTargets scans args left to right for J<n>:<value> joint
// specifiers. Text between specifiers is skipped; a J token with no
// digits, no colon, an out-of-range joint number, or a non-integer
// value fails the whole line. A joint mentioned twice keeps the last
// value since each assignment overwrites the slot.
func (p *Parser) parseJointTargets(args string) (joint.Positions, bool) {
	var targets joint.Positions
	i := 0
	for i < len(args) {
		if upper(args[i]) != 'J' {
			i++
			continue
		}
		i++

		numStart := i
		for i < len(args) && isDigit(args[i]) {
			i++
		}
		if i == numStart {
			return joint.Positions{}, false
		}
		jointNum, err := strconv.Atoi(args[numStart:i])
		if err != nil || jointNum < 1 || jointNum > p.joints {
			return joint.Positions{}, false
		}

		if i >= len(args) || args[i] != ':' {
			return joint.Positions{}, false
		}
		i++

		valStart := i
		for i < len(args) && args[i] != ' ' && args[i] != '\t' {
			i++
		}
		value, ok := parseSteps(args[valStart:i])
		if !ok {
			return joint.Positions{}, false
		}
		targets.Set(jointNum-1, value)
	}
	return targets, true
}

// parseSteps accepts an optional leading sign followed by only digits.
func parseSteps(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	body := s
	if body[0] == '+' || body[0] == '-' {
		body = body[1:]
	}
	if body == "" {
		return 0, false
	}
	for j := 0; j < len(body); j++ {
		if !isDigit(body[j]) {
			return 0, false
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
