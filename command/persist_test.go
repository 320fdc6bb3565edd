package command_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jsondoc.dev/jsondoc/command"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)

	_, err := eng.Set("a", ".", `{"x":1,"y":[1,2,3]}`, false, false)
	require.NoError(t, err)
	_, err = eng.Set("b", ".", `"just a string"`, false, false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, eng.Save(&buf))

	reloaded := newEngine(t)
	require.NoError(t, reloaded.Load(buf.Bytes()))

	outA, existsA, err := reloaded.Get("a", command.GetOptions{})
	require.NoError(t, err)
	require.True(t, existsA)
	assert.JSONEq(t, `{"x":1,"y":[1,2,3]}`, string(outA))

	outB, existsB, err := reloaded.Get("b", command.GetOptions{})
	require.NoError(t, err)
	require.True(t, existsB)
	assert.JSONEq(t, `"just a string"`, string(outB))
}

func TestLoadTruncatedDataErrors(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)

	err := eng.Load([]byte{0x01, 0x00})
	require.Error(t, err)
}

func TestLoadReplacesExistingDocuments(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)

	_, err := eng.Set("old", ".", `{"stale":true}`, false, false)
	require.NoError(t, err)

	other := newEngine(t)
	_, err = other.Set("new", ".", `{"fresh":true}`, false, false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, other.Save(&buf))
	require.NoError(t, eng.Load(buf.Bytes()))

	_, existsOld, err := eng.Get("old", command.GetOptions{})
	require.NoError(t, err)
	assert.False(t, existsOld)

	_, existsNew, err := eng.Get("new", command.GetOptions{})
	require.NoError(t, err)
	assert.True(t, existsNew)
}
