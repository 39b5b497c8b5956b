package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Lowering: конструкции, операторы, литералы
	LowInfo                  Code = 1000
	LowUnimplemented         Code = 1001
	LowInvalidUnaryOp        Code = 1002
	LowInvalidBinaryOp       Code = 1003
	LowInvalidLiteral        Code = 1004
	LowInvalidBase           Code = 1005
	LowInvalidSize           Code = 1006
	LowLiteralTooLarge       Code = 1007
	LowDecimalUnknownDigits  Code = 1008
	LowInvalidTimeLiteral    Code = 1009
	LowBuiltinArity          Code = 1010
	LowUnsupportedBuiltin    Code = 1011
	LowPatternInconsistent   Code = 1012
	LowPatternAfterRepeat    Code = 1013
	LowInvalidPackedDim      Code = 1014
	LowInvalidGenvarInit     Code = 1015
	LowPackageItem           Code = 1016
	LowPositionalAfterNamed  Code = 1017
	LowUnsupportedItem       Code = 1018
	LowUnsupportedImport     Code = 1019
	LowUnsupportedAssertion  Code = 1020
	LowUnsupportedSubroutine Code = 1021
	LowMultipleDefault       Code = 1022
	LowUnsupportedTiming     Code = 1023

	// Lowering: порты
	LowPortInfo             Code = 1100
	LowPortDuplicate        Code = 1101
	LowPortVarDuplicate     Code = 1102
	LowPortNetDuplicate     Code = 1103
	LowPortComplete         Code = 1104
	LowPortKindConflict     Code = 1105
	LowPortDoublyDeclared   Code = 1106
	LowPortSignConflict     Code = 1107
	LowPortMissingDirection Code = 1108
	LowPortUndeclared       Code = 1109
	LowPortNotInList        Code = 1110

	// I/O
	IOLoadFileError Code = 4001
	IODecodeError   Code = 4002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:              "Unknown error",
		LowInfo:                  "Lowering information",
		LowUnimplemented:         "Construct not implemented",
		LowInvalidUnaryOp:        "Invalid prefix/postfix operator",
		LowInvalidBinaryOp:       "Invalid binary operator",
		LowInvalidLiteral:        "Invalid number literal",
		LowInvalidBase:           "Invalid integer base",
		LowInvalidSize:           "Invalid integer size",
		LowLiteralTooLarge:       "Literal exceeds its size",
		LowDecimalUnknownDigits:  "x/z digits in decimal literal",
		LowInvalidTimeLiteral:    "Invalid time literal",
		LowBuiltinArity:          "Wrong number of builtin arguments",
		LowUnsupportedBuiltin:    "Unsupported system function",
		LowPatternInconsistent:   "Inconsistent pattern field",
		LowPatternAfterRepeat:    "Field after repeat pattern",
		LowInvalidPackedDim:      "Invalid packed dimension",
		LowInvalidGenvarInit:     "Invalid genvar initialization",
		LowPackageItem:           "Item not allowed in package",
		LowPositionalAfterNamed:  "Positional argument after named",
		LowUnsupportedItem:       "Unsupported module item",
		LowUnsupportedImport:     "Unsupported import",
		LowUnsupportedAssertion:  "Unsupported assertion",
		LowUnsupportedSubroutine: "Unsupported subroutine",
		LowMultipleDefault:       "Multiple default cases",
		LowUnsupportedTiming:     "Unsupported timing control",
		LowPortInfo:              "Port information",
		LowPortDuplicate:         "Port declared multiple times",
		LowPortVarDuplicate:      "Port variable declared multiple times",
		LowPortNetDuplicate:      "Port net declared multiple times",
		LowPortComplete:          "Port already complete",
		LowPortKindConflict:      "Port kind conflict",
		LowPortDoublyDeclared:    "Port declared as variable and net",
		LowPortSignConflict:      "Contradicting port signs",
		LowPortMissingDirection:  "Port missing direction",
		LowPortUndeclared:        "Port without body declaration",
		LowPortNotInList:         "Declaration not in port list",
		IOLoadFileError:          "I/O load file error",
		IODecodeError:            "Input decode error",
		ObsInfo:                  "Observability information",
		ObsTimings:               "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LOW%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
