package app

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"i3-scratchpad/internal/chooser"
	"i3-scratchpad/internal/scratchpad"
	"i3-scratchpad/internal/tree"
	"i3-scratchpad/internal/wm"
	"i3-scratchpad/pkg/config"
	"i3-scratchpad/pkg/logger"
)

// Pipeline stages, used to prefix errors.
const (
	StageQuery    = "query tree"
	StageSelect   = "select scratchpad windows"
	StageChoose   = "choose window"
	StageDispatch = "dispatch command"
)

// StageError names the pipeline stage a failure happened in.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Picker asks the user to pick one of the entries.
type Picker interface {
	Choose(entries []scratchpad.Entry) (chooser.Result, error)
}

// Outcome describes a completed run.
type Outcome struct {
	Window    uint64
	Label     string
	Offered   int
	Cancelled bool
}

type ScratchpadPicker struct {
	wm     wm.WindowManager
	picker Picker
	log    *logger.Logger
}

// New wires a picker from its collaborators.
func New(manager wm.WindowManager, picker Picker, log *logger.Logger) *ScratchpadPicker {
	return &ScratchpadPicker{wm: manager, picker: picker, log: log}
}

// NewFromConfig builds the manager client and chooser described by cfg.
func NewFromConfig(cfg *config.Config, log *logger.Logger) (*ScratchpadPicker, error) {
	log.Debug("Initializing scratchpad picker",
		"chooser", cfg.GetChooser(),
		"msg", cfg.GetMsgBinary(),
		"fuzzy", cfg.FuzzyEnabled())

	manager, err := wm.New(cfg.GetMsgBinary(), log)
	if err != nil {
		return nil, &StageError{Stage: StageQuery, Err: err}
	}
	picker := chooser.New(cfg.GetChooser(), log, chooser.WithFuzzy(cfg.FuzzyEnabled()))

	log.Info("Window manager initialized", "name", manager.Name(), "chooser", picker.Command())
	return New(manager, picker, log), nil
}

// Run queries the tree, lets the user pick a scratchpad window and shows
// it. A dismissed chooser is reported through Outcome, not as an error.
func (p *ScratchpadPicker) Run() (Outcome, error) {
	raw, err := p.wm.Tree()
	if err != nil {
		return Outcome{}, &StageError{Stage: StageQuery, Err: err}
	}
	root := tree.Reduce(raw)
	p.log.Debug("Reduced tree", "node_count", root.Count())

	if p.log.Level() <= zerolog.DebugLevel {
		if scratch, ok := root.FindByName(scratchpad.Marker); ok {
			dumpTree(p.log, scratch)
		}
	}

	entries, err := scratchpad.Select(root)
	if err != nil {
		return Outcome{}, &StageError{Stage: StageSelect, Err: err}
	}
	p.log.Debug("Scratchpad windows", "count", len(entries), "labels", scratchpad.Labels(entries))
	if len(entries) == 0 {
		p.log.Info("Scratchpad is empty")
	}

	result, err := p.picker.Choose(entries)
	if err != nil {
		return Outcome{}, &StageError{Stage: StageChoose, Err: err}
	}
	if result.Cancelled {
		p.log.Info("Selection cancelled")
		return Outcome{Offered: len(entries), Cancelled: true}, nil
	}

	if err := p.wm.Dispatch(result.ID); err != nil {
		return Outcome{}, &StageError{Stage: StageDispatch, Err: err}
	}

	return Outcome{Window: result.ID, Label: result.Label, Offered: len(entries)}, nil
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
