// Package wizard implements the palm scan flow as a state machine:
// hand select, guide, upload, analyzing. It holds no UI and performs no I/O;
// the palmscan screen drives it and owns the gateway call.
package wizard

import (
	"errors"
	"fmt"

	"github.com/aipalm/aipalm/internal/palm"
)

// Step is a wizard stage.
type Step int

const (
	StepHandSelect Step = iota
	StepGuide
	StepUpload
	StepAnalyzing
)

func (s Step) String() string {
	switch s {
	case StepHandSelect:
		return "hand_select"
	case StepGuide:
		return "guide"
	case StepUpload:
		return "upload"
	case StepAnalyzing:
		return "analyzing"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Hand identifies which palm is scanned.
type Hand string

const (
	HandUnset Hand = ""
	HandLeft  Hand = "left"
	HandRight Hand = "right"
)

// ParseHand accepts "left" or "right".
func ParseHand(s string) (Hand, error) {
	switch Hand(s) {
	case HandLeft, HandRight:
		return Hand(s), nil
	}
	return HandUnset, fmt.Errorf("unknown hand %q (want left or right)", s)
}

// ErrInvalidTransition is returned when an operation is not allowed in the
// current step. The wizard is left unchanged.
var ErrInvalidTransition = errors.New("invalid wizard transition")

// Session is the data gathered while the wizard runs.
type Session struct {
	Hand     Hand
	Image    *palm.Image
	Analysis *palm.Reading
}

// Wizard is the scan flow state. The zero value is not usable; call New.
type Wizard struct {
	step      Step
	session   Session
	analyzing bool
}

// New returns a wizard at StepHandSelect with an empty session.
func New() *Wizard {
	return &Wizard{step: StepHandSelect}
}

// Step returns the current step.
func (w *Wizard) Step() Step { return w.step }

// Analyzing reports whether a gateway call is outstanding.
func (w *Wizard) Analyzing() bool { return w.analyzing }

// Session returns a copy of the gathered data.
func (w *Wizard) Session() Session { return w.session }

// SelectHand records the hand and moves to StepGuide.
func (w *Wizard) SelectHand(h Hand) error {
	if w.step != StepHandSelect {
		return transitionErr("select hand", w.step)
	}
	if h != HandLeft && h != HandRight {
		return fmt.Errorf("select hand: %w: hand %q", ErrInvalidTransition, h)
	}
	w.session.Hand = h
	w.step = StepGuide
	return nil
}

// ConfirmGuide moves from StepGuide to StepUpload.
func (w *Wizard) ConfirmGuide() error {
	if w.step != StepGuide {
		return transitionErr("confirm guide", w.step)
	}
	w.step = StepUpload
	return nil
}

// CaptureImage records the image and moves to StepAnalyzing. The caller
// must then issue exactly one gateway call and report it with Succeed or
// Fail.
func (w *Wizard) CaptureImage(img palm.Image) error {
	if w.step != StepUpload {
		return transitionErr("capture image", w.step)
	}
	if w.session.Hand == HandUnset {
		return fmt.Errorf("capture image: %w: no hand selected", ErrInvalidTransition)
	}
	w.session.Image = &img
	w.session.Analysis = nil
	w.step = StepAnalyzing
	w.analyzing = true
	return nil
}

// Succeed records the reading for the outstanding gateway call and returns
// the completed session.
func (w *Wizard) Succeed(r *palm.Reading) (Session, error) {
	if w.step != StepAnalyzing || !w.analyzing {
		return Session{}, transitionErr("succeed", w.step)
	}
	if r == nil {
		return Session{}, fmt.Errorf("succeed: %w: nil reading", ErrInvalidTransition)
	}
	w.session.Analysis = r
	w.analyzing = false
	return w.session, nil
}

// Fail reverts an outstanding analysis to StepUpload so a new image can be
// captured.
func (w *Wizard) Fail() error {
	if w.step != StepAnalyzing || !w.analyzing {
		return transitionErr("fail", w.step)
	}
	w.step = StepUpload
	w.analyzing = false
	return nil
}

// Back steps one stage back. It reports leave=true at StepHandSelect, in
// which case the caller leaves the wizard. Back is refused while analyzing.
func (w *Wizard) Back() (leave bool, err error) {
	switch w.step {
	case StepHandSelect:
		return true, nil
	case StepAnalyzing:
		return false, transitionErr("back", w.step)
	default:
		w.step--
		return false, nil
	}
}

func transitionErr(op string, s Step) error {
	return fmt.Errorf("%s: %w from step %s", op, ErrInvalidTransition, s)
}
