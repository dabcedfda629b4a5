package pcd8544

import (
	"errors"
)

// ErrorCode is a parameter or geometry validation failure.
//
// The most recent one is kept by the device and can be read back with
// Dev.LastError. Transport failures never produce an ErrorCode.
type ErrorCode uint8

// Validation failures.
const (
	ErrNone ErrorCode = iota
	ErrInvalidTempCoefficient
	ErrInvalidContrastPercentage
	ErrInvalidXYCoordinates
	ErrInvalidDataBlockSize
	ErrInvalidFontIndex
	ErrInvalidCharacter
	ErrInvalidStringLength
	ErrInvalidXYSubcoordinates
	ErrInvalidOriginDestination
	ErrInvalidVertices
	ErrInvalidEdgesLength
	ErrInvalidCircleRadiusCenter
	ErrInvalidBiasLevel
)

var errorText = [...]string{
	ErrNone:                      "no error",
	ErrInvalidTempCoefficient:    "invalid temperature coefficient",
	ErrInvalidContrastPercentage: "invalid contrast percentage",
	ErrInvalidXYCoordinates:      "invalid text cursor coordinates",
	ErrInvalidDataBlockSize:      "invalid data block size",
	ErrInvalidFontIndex:          "invalid font",
	ErrInvalidCharacter:          "character not in font",
	ErrInvalidStringLength:       "string does not fit the screen",
	ErrInvalidXYSubcoordinates:   "invalid pixel coordinates",
	ErrInvalidOriginDestination:  "line origin is right of destination",
	ErrInvalidVertices:           "invalid rectangle vertices",
	ErrInvalidEdgesLength:        "rectangle edge too short for rounded corners",
	ErrInvalidCircleRadiusCenter: "circle radius or center out of screen",
	ErrInvalidBiasLevel:          "invalid bias level",
}

func (e ErrorCode) Error() string {
	if int(e) < len(errorText) {
		return "pcd8544: " + errorText[e]
	}
	return "pcd8544: unknown error"
}

// State failures.
var (
	ErrBusy        = errors.New("pcd8544: transfer in progress")
	ErrNotReady    = errors.New("pcd8544: not ready")
	ErrNotAsleep   = errors.New("pcd8544: not asleep")
	ErrUnknownMode = errors.New("pcd8544: unknown transfer mode")
)
