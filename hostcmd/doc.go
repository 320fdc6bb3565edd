// Package hostcmd implements a text-based host dispatch table over
// [go.jsondoc.dev/jsondoc/command.Engine]: tokenizing a command line and
// routing it to the matching JSON.* method, plus the host-level INFO
// command. SAVE and DEBUG RELOAD are handled by cmd/jsonmod in its
// dispatchHostCommand, not here.
package hostcmd
