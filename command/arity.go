package command

import "strings"

// arityTable maps each command name (including JSON. prefix) to its
// arity: a positive value is an exact argument count (including the
// command name itself); a negative value is a minimum.
var arityTable = map[string]int{
	"JSON.SET":        -4,
	"JSON.GET":        -2,
	"JSON.MGET":       -3,
	"JSON.DEL":        -2,
	"JSON.FORGET":     -2,
	"JSON.TYPE":       -2,
	"JSON.NUMINCRBY":  4,
	"JSON.NUMMULTBY":  4,
	"JSON.STRLEN":     -2,
	"JSON.STRAPPEND":  -3,
	"JSON.TOGGLE":     -2,
	"JSON.OBJLEN":     -2,
	"JSON.OBJKEYS":    -2,
	"JSON.ARRLEN":     -2,
	"JSON.ARRAPPEND":  -4,
	"JSON.ARRPOP":     -2,
	"JSON.ARRINSERT":  -5,
	"JSON.ARRTRIM":    5,
	"JSON.CLEAR":      -2,
	"JSON.ARRINDEX":   -4,
	"JSON.RESP":       -2,
	"JSON.DEBUG":      -2,
}

// CheckArity reports whether argc (the command name plus its arguments)
// satisfies cmdName's documented arity. An unknown command name is
// always considered valid here; the dispatcher rejects it separately.
func CheckArity(cmdName string, argc int) bool {
	want, ok := arityTable[strings.ToUpper(cmdName)]
	if !ok {
		return true
	}

	if want >= 0 {
		return argc == want
	}

	return argc >= -want
}

// KeySpec reports which of args (the positional arguments after the
// command name, before any path or value) name keys, for COMMAND GETKEYS
// integration. Every command takes its first positional argument as the
// key, except JSON.MGET, which takes every argument up to (not
// including) the final path argument.
func KeySpec(cmdName string, args []string) []string {
	if len(args) == 0 {
		return nil
	}

	if strings.EqualFold(cmdName, "JSON.MGET") {
		if len(args) < 2 {
			return nil
		}

		return args[:len(args)-1]
	}

	return args[:1]
}
