package hostcmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.jsondoc.dev/jsondoc/command"
)

// Tokenize splits a line into command tokens, honoring single- and
// double-quoted spans so a JSON value containing spaces can be passed
// as one argument. A quote opens a span only at the start of a token;
// a quote inside a token is kept literally, so {"a":1} stays intact.
func Tokenize(line string) ([]string, error) {
	var (
		tokens []string
		cur    strings.Builder
		inTok  bool
		quote  rune
	)

	flush := func() {
		if inTok {
			tokens = append(tokens, cur.String())
			cur.Reset()
			inTok = false
		}
	}

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case !inTok && (r == '\'' || r == '"'):
			quote = r
			inTok = true
		case r == ' ' || r == '\t':
			flush()
		default:
			inTok = true
			cur.WriteRune(r)
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote")
	}

	flush()

	return tokens, nil
}

// Dispatch runs one command line against eng, returning the reply text
// to print. Reply formatting keeps it terse: scalars print bare,
// booleans as true/false, nil results as "(nil)", errors as "KIND
// message".
func Dispatch(eng *command.Engine, tokens []string) (string, error) {
	if len(tokens) == 0 {
		return "", nil
	}

	name := strings.ToUpper(tokens[0])
	args := tokens[1:]

	if !command.CheckArity(name, len(tokens)) {
		return "", command.ArityError(name)
	}

	switch name {
	case "JSON.SET":
		return dispatchSet(eng, args)
	case "JSON.GET":
		return dispatchGet(eng, args)
	case "JSON.MGET":
		return dispatchMGet(eng, args)
	case "JSON.DEL", "JSON.FORGET":
		return dispatchDel(eng, args)
	case "JSON.TYPE":
		return dispatchType(eng, args)
	case "JSON.NUMINCRBY":
		return dispatchNum(eng, args, eng.NumIncrBy)
	case "JSON.NUMMULTBY":
		return dispatchNum(eng, args, eng.NumMultBy)
	case "JSON.STRLEN":
		return dispatchReadScalar(eng, args, eng.StrLen)
	case "JSON.STRAPPEND":
		return dispatchStrAppend(eng, args)
	case "JSON.TOGGLE":
		return dispatchReadScalar(eng, args, eng.Toggle)
	case "JSON.OBJLEN":
		return dispatchReadScalar(eng, args, eng.ObjLen)
	case "JSON.OBJKEYS":
		return dispatchReadScalar(eng, args, eng.ObjKeys)
	case "JSON.ARRLEN":
		return dispatchReadScalar(eng, args, eng.ArrLen)
	case "JSON.ARRAPPEND":
		return dispatchArrAppend(eng, args)
	case "JSON.ARRINSERT":
		return dispatchArrInsert(eng, args)
	case "JSON.ARRTRIM":
		return dispatchArrTrim(eng, args)
	case "JSON.ARRPOP":
		return dispatchArrPop(eng, args)
	case "JSON.ARRINDEX":
		return dispatchArrIndex(eng, args)
	case "JSON.CLEAR":
		return dispatchClear(eng, args)
	case "JSON.RESP":
		return dispatchResp(eng, args)
	case "JSON.DEBUG":
		return dispatchDebug(eng, args)
	case "INFO":
		return dispatchInfo(eng), nil
	default:
		return "", fmt.Errorf("ERROR unknown command %q", tokens[0])
	}
}

// dispatchInfo renders the engine's metrics snapshot the way a host's
// INFO command would print the json_core_metrics section.
func dispatchInfo(eng *command.Engine) string {
	fields := eng.Metrics().Snapshot().InfoFields()

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var sb strings.Builder

	for _, k := range keys {
		fmt.Fprintf(&sb, "%s:%v\n", k, fields[k])
	}

	return strings.TrimRight(sb.String(), "\n")
}

func pathOr(args []string, i int, fallback string) string {
	if i < len(args) {
		return args[i]
	}

	return fallback
}

func dispatchSet(eng *command.Engine, args []string) (string, error) {
	if len(args) < 3 {
		return "", command.ArityError("JSON.SET")
	}

	key, pathStr, value := args[0], args[1], args[2]

	nx, xx := false, false

	for _, flag := range args[3:] {
		switch strings.ToUpper(flag) {
		case "NX":
			nx = true
		case "XX":
			xx = true
		}
	}

	ok, err := eng.Set(key, pathStr, value, nx, xx)
	if err != nil {
		return "", err
	}

	if !ok {
		return "(nil)", nil
	}

	return "OK", nil
}

func dispatchGet(eng *command.Engine, args []string) (string, error) {
	if len(args) < 1 {
		return "", command.ArityError("JSON.GET")
	}

	key := args[0]
	opts := command.GetOptions{}

	i := 1
	for i < len(args) {
		if opt := strings.ToUpper(args[i]); (opt == "INDENT" || opt == "SPACE" || opt == "NEWLINE") && i+1 >= len(args) {
			return "", command.ArityError("JSON.GET")
		}

		switch strings.ToUpper(args[i]) {
		case "INDENT":
			opts.Indent = args[i+1]
			i += 2
		case "SPACE":
			opts.Space = args[i+1]
			i += 2
		case "NEWLINE":
			opts.Newline = args[i+1]
			i += 2
		case "NOESCAPE":
			i++
		default:
			opts.Paths = append(opts.Paths, args[i])
			i++
		}
	}

	out, exists, err := eng.Get(key, opts)
	if err != nil {
		return "", err
	}

	if !exists {
		return "(nil)", nil
	}

	return string(out), nil
}

func dispatchMGet(eng *command.Engine, args []string) (string, error) {
	if len(args) < 2 {
		return "", command.ArityError("JSON.MGET")
	}

	keys := args[:len(args)-1]
	pathStr := args[len(args)-1]

	out, err := eng.MGet(keys, pathStr)
	if err != nil {
		return "", err
	}

	parts := make([]string, len(out))
	for i, o := range out {
		if o == nil {
			parts[i] = "(nil)"
		} else {
			parts[i] = string(o)
		}
	}

	return strings.Join(parts, "\n"), nil
}

func dispatchDel(eng *command.Engine, args []string) (string, error) {
	if len(args) < 1 {
		return "", command.ArityError("JSON.DEL")
	}

	count, err := eng.Del(args[0], pathOr(args, 1, ""))
	if err != nil {
		return "", err
	}

	return strconv.Itoa(count), nil
}

func dispatchType(eng *command.Engine, args []string) (string, error) {
	if len(args) < 1 {
		return "", command.ArityError("JSON.TYPE")
	}

	kinds, exists, err := eng.Type(args[0], pathOr(args, 1, ""))
	if err != nil {
		return "", err
	}

	if !exists {
		return "(nil)", nil
	}

	return strings.Join(kinds, "\n"), nil
}

func dispatchNum(eng *command.Engine, args []string, op func(key, pathStr, deltaStr string) ([]byte, error)) (string, error) {
	if len(args) != 3 {
		return "", fmt.Errorf("SYNTAXERR wrong number of arguments")
	}

	out, err := op(args[0], args[1], args[2])
	if err != nil {
		return "", err
	}

	return string(out), nil
}

func dispatchReadScalar(eng *command.Engine, args []string, op func(key, pathStr string) ([]byte, error)) (string, error) {
	if len(args) < 1 {
		return "", command.ArityError("JSON")
	}

	out, err := op(args[0], pathOr(args, 1, ""))
	if err != nil {
		return "", err
	}

	return string(out), nil
}

func dispatchStrAppend(eng *command.Engine, args []string) (string, error) {
	if len(args) < 2 {
		return "", command.ArityError("JSON.STRAPPEND")
	}

	pathStr, value := ".", args[1]
	if len(args) > 2 {
		pathStr, value = args[1], args[2]
	}

	out, err := eng.StrAppend(args[0], pathStr, value)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

func dispatchArrAppend(eng *command.Engine, args []string) (string, error) {
	if len(args) < 3 {
		return "", command.ArityError("JSON.ARRAPPEND")
	}

	out, err := eng.ArrAppend(args[0], args[1], args[2:])
	if err != nil {
		return "", err
	}

	return string(out), nil
}

func dispatchArrInsert(eng *command.Engine, args []string) (string, error) {
	if len(args) < 4 {
		return "", command.ArityError("JSON.ARRINSERT")
	}

	index, err := strconv.Atoi(args[2])
	if err != nil {
		return "", fmt.Errorf("SYNTAXERR invalid index %q", args[2])
	}

	out, err := eng.ArrInsert(args[0], args[1], index, args[3:])
	if err != nil {
		return "", err
	}

	return string(out), nil
}

func dispatchArrTrim(eng *command.Engine, args []string) (string, error) {
	if len(args) != 4 {
		return "", fmt.Errorf("SYNTAXERR wrong number of arguments")
	}

	start, err := strconv.Atoi(args[2])
	if err != nil {
		return "", fmt.Errorf("SYNTAXERR invalid start %q", args[2])
	}

	stop, err := strconv.Atoi(args[3])
	if err != nil {
		return "", fmt.Errorf("SYNTAXERR invalid stop %q", args[3])
	}

	out, err := eng.ArrTrim(args[0], args[1], start, stop)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

func dispatchArrPop(eng *command.Engine, args []string) (string, error) {
	if len(args) < 1 {
		return "", command.ArityError("JSON.ARRPOP")
	}

	pathStr := pathOr(args, 1, ".")
	index := -1

	if len(args) > 2 {
		i, err := strconv.Atoi(args[2])
		if err != nil {
			return "", fmt.Errorf("SYNTAXERR invalid index %q", args[2])
		}

		index = i
	}

	out, err := eng.ArrPop(args[0], pathStr, index)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

func dispatchArrIndex(eng *command.Engine, args []string) (string, error) {
	if len(args) < 3 {
		return "", command.ArityError("JSON.ARRINDEX")
	}

	start, stop := 0, 0

	if len(args) > 3 {
		v, err := strconv.Atoi(args[3])
		if err != nil {
			return "", fmt.Errorf("SYNTAXERR invalid start %q", args[3])
		}

		start = v
	}

	if len(args) > 4 {
		v, err := strconv.Atoi(args[4])
		if err != nil {
			return "", fmt.Errorf("SYNTAXERR invalid stop %q", args[4])
		}

		stop = v
	}

	out, err := eng.ArrIndex(args[0], args[1], args[2], start, stop)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

func dispatchClear(eng *command.Engine, args []string) (string, error) {
	if len(args) < 1 {
		return "", command.ArityError("JSON.CLEAR")
	}

	count, err := eng.Clear(args[0], pathOr(args, 1, ""))
	if err != nil {
		return "", err
	}

	return strconv.Itoa(count), nil
}

func dispatchResp(eng *command.Engine, args []string) (string, error) {
	if len(args) < 1 {
		return "", command.ArityError("JSON.RESP")
	}

	v, exists, err := eng.Resp(args[0], pathOr(args, 1, ""))
	if err != nil {
		return "", err
	}

	if !exists {
		return "(nil)", nil
	}

	return fmt.Sprintf("%v", v), nil
}
