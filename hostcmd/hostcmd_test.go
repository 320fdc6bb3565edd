package hostcmd_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jsondoc.dev/jsondoc/command"
	"go.jsondoc.dev/jsondoc/config"
	"go.jsondoc.dev/jsondoc/hostcmd"
)

func newEngine(t *testing.T) *command.Engine {
	t.Helper()

	return command.New(config.NewLimits())
}

func TestTokenizeSplitsOnWhitespace(t *testing.T) {
	t.Parallel()

	tokens, err := hostcmd.Tokenize(`JSON.SET doc . {"a":1}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"JSON.SET", "doc", ".", `{"a":1}`}, tokens)
}

func TestTokenizeHonorsQuotedSpans(t *testing.T) {
	t.Parallel()

	tokens, err := hostcmd.Tokenize(`JSON.SET doc . "hello world"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"JSON.SET", "doc", ".", "hello world"}, tokens)
}

func TestTokenizeUnterminatedQuoteErrors(t *testing.T) {
	t.Parallel()

	_, err := hostcmd.Tokenize(`JSON.SET doc . "unterminated`)
	require.Error(t, err)
}

func TestDispatchSetAndGet(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)

	reply, err := hostcmd.Dispatch(eng, []string{"JSON.SET", "doc", ".", `{"a":1}`})
	require.NoError(t, err)
	assert.Equal(t, "OK", reply)

	reply, err = hostcmd.Dispatch(eng, []string{"JSON.GET", "doc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, reply)
}

func TestDispatchUnknownCommand(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)

	_, err := hostcmd.Dispatch(eng, []string{"NOPE"})
	require.Error(t, err)
}

func TestDispatchArityError(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)

	_, err := hostcmd.Dispatch(eng, []string{"JSON.SET", "doc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SYNTAXERR")
}

func TestDispatchGetMissingKeyReturnsNil(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)

	reply, err := hostcmd.Dispatch(eng, []string{"JSON.GET", "missing"})
	require.NoError(t, err)
	assert.Equal(t, "(nil)", reply)
}

func TestDispatchInfoReportsSortedMetrics(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)

	_, err := hostcmd.Dispatch(eng, []string{"JSON.SET", "doc", ".", `{"a":1}`})
	require.NoError(t, err)

	reply, err := hostcmd.Dispatch(eng, []string{"INFO"})
	require.NoError(t, err)
	assert.Contains(t, reply, "json_num_documents:1")

	lines := strings.Split(reply, "\n")
	assert.True(t, sort.StringsAreSorted(lines))
}

func TestDispatchNumIncrBy(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)

	_, err := hostcmd.Dispatch(eng, []string{"JSON.SET", "doc", ".", `{"a":10}`})
	require.NoError(t, err)

	reply, err := hostcmd.Dispatch(eng, []string{"JSON.NUMINCRBY", "doc", ".a", "5"})
	require.NoError(t, err)
	assert.Equal(t, "15", reply)
}

func TestDispatchDebugMemory(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)

	_, err := hostcmd.Dispatch(eng, []string{"JSON.SET", "doc", ".", `{"a":1}`})
	require.NoError(t, err)

	reply, err := hostcmd.Dispatch(eng, []string{"JSON.DEBUG", "MEMORY", "doc"})
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
}
