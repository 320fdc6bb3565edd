package hostcmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.jsondoc.dev/jsondoc/command"
)

// dispatchDebug implements JSON.DEBUG <SUBCOMMAND> key [path].
func dispatchDebug(eng *command.Engine, args []string) (string, error) {
	if len(args) < 1 {
		return "", command.ArityError("JSON.DEBUG")
	}

	sub := strings.ToUpper(args[0])
	rest := args[1:]

	switch sub {
	case "MEMORY":
		return debugKeyPath(rest, eng.DebugMemory)
	case "FIELDS":
		return debugKeyPath(rest, eng.DebugFields)
	case "DEPTH":
		if len(rest) < 1 {
			return "", command.ArityError("JSON.DEBUG DEPTH")
		}

		n, err := eng.DebugDepth(rest[0])
		if err != nil {
			return "", err
		}

		return strconv.Itoa(n), nil
	case "KEYTABLE-CHECK":
		report, ok := eng.DebugKeyTableCheck()
		if !ok {
			return "", fmt.Errorf("ERROR %s", report)
		}

		return report, nil
	case "KEYTABLE-DISTRIBUTION":
		buckets := eng.DebugKeyTableDistribution()

		lines := make([]string, len(buckets))
		for i, b := range buckets {
			lines[i] = fmt.Sprintf("%s: %d", b.Bucket, b.Entries)
		}

		return strings.Join(lines, "\n"), nil
	case "SCHEMA":
		if len(rest) < 1 {
			return "", command.ArityError("JSON.DEBUG SCHEMA")
		}

		schema, err := eng.DebugSchema(rest[0], pathOr(rest, 1, ""))
		if err != nil {
			return "", err
		}

		out, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return "", fmt.Errorf("ERROR marshaling schema: %w", err)
		}

		return string(out), nil
	default:
		return "", fmt.Errorf("SYNTAXERR unknown DEBUG subcommand %q", args[0])
	}
}

func debugKeyPath(args []string, op func(key, pathStr string) (int, error)) (string, error) {
	if len(args) < 1 {
		return "", command.ArityError("JSON.DEBUG")
	}

	n, err := op(args[0], pathOr(args, 1, ""))
	if err != nil {
		return "", err
	}

	return strconv.Itoa(n), nil
}
