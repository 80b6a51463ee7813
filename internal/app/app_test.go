package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i3-scratchpad/internal/chooser"
	"i3-scratchpad/internal/proc"
	"i3-scratchpad/internal/scratchpad"
	"i3-scratchpad/internal/tree"
	"i3-scratchpad/pkg/config"
	"i3-scratchpad/pkg/logger"
)

const scratchJSON = `{"type":"root","name":"root","nodes":[
	{"type":"output","name":"__i3","nodes":[
		{"type":"workspace","name":"__i3_scratch","nodes":[],"floating_nodes":[
			{"type":"floating_con","nodes":[{"type":"con","name":"b","window":2,"nodes":[],"floating_nodes":[]}],"floating_nodes":[]},
			{"type":"floating_con","nodes":[{"type":"con","window":1,"nodes":[],"floating_nodes":[]}],"floating_nodes":[]},
			{"type":"floating_con","nodes":[{"type":"con","name":"a","window":3,"nodes":[],"floating_nodes":[]}],"floating_nodes":[]}
		]}
	],"floating_nodes":[]}
],"floating_nodes":[]}`

type fakeWM struct {
	raw         *tree.RawNode
	treeErr     error
	dispatchErr error
	dispatched  []uint64
}

func (f *fakeWM) Tree() (*tree.RawNode, error) { return f.raw, f.treeErr }

func (f *fakeWM) Dispatch(id uint64) error {
	f.dispatched = append(f.dispatched, id)
	return f.dispatchErr
}

func (f *fakeWM) Name() string { return "fake" }

type fakePicker struct {
	offered []scratchpad.Entry
	result  chooser.Result
	err     error
	calls   int
}

func (f *fakePicker) Choose(entries []scratchpad.Entry) (chooser.Result, error) {
	f.calls++
	f.offered = entries
	return f.result, f.err
}

func decoded(t *testing.T, doc string) *tree.RawNode {
	t.Helper()
	raw, err := tree.DecodeBytes([]byte(doc))
	require.NoError(t, err)
	return raw
}

func TestRunDispatchesSelection(t *testing.T) {
	manager := &fakeWM{raw: decoded(t, scratchJSON)}
	picker := &fakePicker{result: chooser.Result{ID: 3, Label: "2:a"}}

	outcome, err := New(manager, picker, logger.Nop()).Run()
	require.NoError(t, err)

	assert.Equal(t, []string{"1:<No title>", "2:a", "3:b"}, scratchpad.Labels(picker.offered))
	assert.Equal(t, []uint64{3}, manager.dispatched)
	assert.Equal(t, Outcome{Window: 3, Label: "2:a", Offered: 3}, outcome)
}

func TestRunCancelledDoesNotDispatch(t *testing.T) {
	manager := &fakeWM{raw: decoded(t, scratchJSON)}
	picker := &fakePicker{result: chooser.Result{Cancelled: true}}

	outcome, err := New(manager, picker, logger.Nop()).Run()
	require.NoError(t, err)

	assert.True(t, outcome.Cancelled)
	assert.Equal(t, 3, outcome.Offered)
	assert.Empty(t, manager.dispatched)
}

func TestRunEmptyScratchpadStillAsks(t *testing.T) {
	manager := &fakeWM{raw: decoded(t, `{"type":"workspace","name":"__i3_scratch","nodes":[],"floating_nodes":[]}`)}
	picker := &fakePicker{result: chooser.Result{Cancelled: true}}

	outcome, err := New(manager, picker, logger.Nop()).Run()
	require.NoError(t, err)

	assert.Equal(t, 1, picker.calls)
	assert.Empty(t, picker.offered)
	assert.True(t, outcome.Cancelled)
}

func TestRunStageErrors(t *testing.T) {
	queryErr := &proc.Error{Program: "i3-msg", ExitCode: 1, Err: errors.New("exit status 1")}
	chooseErr := &chooser.UnmatchedSelectionError{Choice: "bogus"}
	dispatchErr := errors.New("rejected")

	tests := []struct {
		name      string
		manager   *fakeWM
		picker    *fakePicker
		wantStage string
		wantErr   error
	}{
		{
			name:      "query",
			manager:   &fakeWM{treeErr: queryErr},
			picker:    &fakePicker{},
			wantStage: StageQuery,
			wantErr:   queryErr,
		},
		{
			name:      "select",
			manager:   &fakeWM{raw: decoded(t, `{"type":"root","nodes":[],"floating_nodes":[]}`)},
			picker:    &fakePicker{},
			wantStage: StageSelect,
			wantErr:   scratchpad.ErrNotFound,
		},
		{
			name:      "choose",
			manager:   &fakeWM{raw: decoded(t, scratchJSON)},
			picker:    &fakePicker{err: chooseErr},
			wantStage: StageChoose,
			wantErr:   chooseErr,
		},
		{
			name:      "dispatch",
			manager:   &fakeWM{raw: decoded(t, scratchJSON), dispatchErr: dispatchErr},
			picker:    &fakePicker{result: chooser.Result{ID: 1, Label: "1:<No title>"}},
			wantStage: StageDispatch,
			wantErr:   dispatchErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.manager, tt.picker, logger.Nop()).Run()
			require.Error(t, err)

			var stageErr *StageError
			require.True(t, errors.As(err, &stageErr))
			assert.Equal(t, tt.wantStage, stageErr.Stage)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, strings.HasPrefix(err.Error(), tt.wantStage+": "))
		})
	}
}

func TestRunSelectStopsBeforeChooser(t *testing.T) {
	picker := &fakePicker{}
	manager := &fakeWM{raw: decoded(t, `{"type":"workspace","name":"__i3_scratch","nodes":[
		{"type":"con","name":"ghost","nodes":[],"floating_nodes":[]}
	],"floating_nodes":[]}`)}

	_, err := New(manager, picker, logger.Nop()).Run()

	var missing *scratchpad.MissingIDError
	assert.True(t, errors.As(err, &missing))
	assert.Equal(t, 0, picker.calls)
}

func TestDescribe(t *testing.T) {
	name := "htop"
	id := uint64(12582919)

	assert.Equal(t, "    con htop [id=12582919]", describe(&tree.Node{Kind: "con", Name: &name, ID: &id}, 2))
	assert.Equal(t, "floating_con", describe(&tree.Node{Kind: "floating_con"}, 0))
}

// TestNewFromConfigEndToEnd drives the real msg client and chooser against
// stub programs.
func TestNewFromConfigEndToEnd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tree.json"), []byte(scratchJSON), 0644))
	commands := filepath.Join(dir, "commands")
	msg := filepath.Join(dir, "i3-msg")
	script := fmt.Sprintf(`#!/bin/sh
case "$2" in
get_tree) cat %q ;;
command) printf '%%s\n' "$3" >> %q; echo '[{"success":true},{"success":true}]' ;;
esac
`, filepath.Join(dir, "tree.json"), commands)
	require.NoError(t, os.WriteFile(msg, []byte(script), 0755))

	run := func(t *testing.T, chooserCmd string) Outcome {
		cfg := config.Default()
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		cfg.BindFlags(fs)
		require.NoError(t, fs.Parse([]string{"--msg", msg, chooserCmd}))
		require.NoError(t, cfg.ApplyArgs(fs.Args()))

		picker, err := NewFromConfig(cfg, logger.Nop())
		require.NoError(t, err)
		outcome, err := picker.Run()
		require.NoError(t, err)
		return outcome
	}

	outcome := run(t, "sed -n 3p")
	assert.Equal(t, Outcome{Window: 2, Label: "3:b", Offered: 3}, outcome)

	outcome = run(t, "cat >/dev/null; exit 1")
	assert.True(t, outcome.Cancelled)

	data, err := os.ReadFile(commands)
	require.NoError(t, err)
	assert.Equal(t, "[id=2] scratchpad show; [id=2] floating disable\n", string(data), "one dispatch, none for the cancelled run")
}

func TestNewFromConfigMissingMsg(t *testing.T) {
	cfg := config.Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--msg", "i3-scratchpad-no-such-msg"}))

	_, err := NewFromConfig(cfg, logger.Nop())

	var pe *proc.Error
	require.True(t, errors.As(err, &pe))
	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StageQuery, stageErr.Stage)
}
