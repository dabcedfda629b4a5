package pcd8544

import (
	"math"
)

// Instruction set.
const (
	cmdFunctionSet = 0x20 // Basic set, horizontal addressing, powered up
	fsPowerDown    = 0x04
	fsExtended     = 0x01

	// Basic instruction set
	cmdDisplayControl = 0x08
	dcNormal          = 0x04
	dcInverse         = 0x05

	// Extended instruction set
	cmdTempCoefficient = 0x04 // 0..3
	cmdBias            = 0x10 // 0..7
	cmdSetVop          = 0x80 // 0..127
)

const (
	maxVop  = 0x7F
	maxBias = 7
)

// TempCoefficient selects the temperature compensation slope of the LCD
// driving voltage.
type TempCoefficient uint8

const (
	TempCoefficient0 TempCoefficient = iota
	TempCoefficient1
	TempCoefficient2
	TempCoefficient3
)

func (tc TempCoefficient) valid() bool { return tc <= TempCoefficient3 }

func displayControl(inverted bool) byte {
	if inverted {
		return cmdDisplayControl | dcInverse
	}
	return cmdDisplayControl | dcNormal
}

// contrastToVop maps a contrast percentage to the operating voltage code.
func contrastToVop(percent float64) (byte, bool) {
	if !(percent >= 0 && percent <= 100) {
		return 0, false
	}
	return byte(math.Round(percent * maxVop / 100)), true
}

// extended wraps cmds between switches to the extended instruction set and
// back.
func extended(cmds ...byte) []byte {
	b := make([]byte, 0, len(cmds)+2)
	b = append(b, cmdFunctionSet|fsExtended)
	b = append(b, cmds...)
	return append(b, cmdFunctionSet)
}

// initSequence returns the commands programming the controller, in order.
func initSequence(vop byte, tc TempCoefficient, bias uint8, inverted bool) []byte {
	return []byte{
		cmdFunctionSet | fsExtended,
		cmdSetVop | vop,
		cmdTempCoefficient | byte(tc),
		cmdBias | bias,
		cmdFunctionSet,
		displayControl(inverted),
	}
}
