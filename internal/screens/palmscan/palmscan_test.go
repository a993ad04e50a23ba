package palmscan

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aipalm/aipalm/internal/i18n"
	"github.com/aipalm/aipalm/internal/llm"
	"github.com/aipalm/aipalm/internal/palm"
	"github.com/aipalm/aipalm/internal/router"
	"github.com/aipalm/aipalm/internal/screen"
	"github.com/aipalm/aipalm/internal/screens"
	"github.com/aipalm/aipalm/internal/ui/toast"
	"github.com/aipalm/aipalm/internal/wizard"
)

var testImage = palm.Image{MediaType: "image/png", Data: []byte("\x89PNG\r\n\x1a\n")}

type fakeAnalyzer struct {
	reading *palm.Reading
	err     error
	calls   int
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ palm.Image, _ string) (*palm.Reading, error) {
	f.calls++
	return f.reading, f.err
}

func newScreen(a palm.Analyzer, n toast.Notifier) *Screen {
	return New(i18n.New("en"), Options{
		Analyzer: a,
		Notifier: n,
		LoadImage: func(path string) (palm.Image, error) {
			if path == "missing.jpg" {
				return palm.Image{}, errors.New("open missing.jpg: no such file")
			}
			return testImage, nil
		},
	})
}

func press(s *Screen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

// toUpload walks the wizard to the upload step choosing the right hand.
func toUpload(t *testing.T, s *Screen) {
	t.Helper()
	press(s, tea.KeyRight)
	press(s, tea.KeyEnter)
	require.Equal(t, wizard.StepGuide, s.Wizard().Step())
	press(s, tea.KeyEnter)
	require.Equal(t, wizard.StepUpload, s.Wizard().Step())
}

// submit types path and returns the analysis message produced by the batch.
func submit(t *testing.T, s *Screen, path string) tea.Msg {
	t.Helper()
	s.input.Model.SetValue(path)
	cmd := press(s, tea.KeyEnter)
	require.NotNil(t, cmd)
	require.True(t, s.Wizard().Analyzing())
	return analyze(s)
}

func analyze(s *Screen) tea.Msg {
	return s.analyze(*s.Wizard().Session().Image)()
}

func TestScanSuccessNavigatesToResult(t *testing.T) {
	reading := &palm.Reading{HeartLine: "h", HeadLine: "d", LifeLine: "l", FateLine: "f", Summary: "s"}
	a := &fakeAnalyzer{reading: reading}
	rec := &toast.Recorder{}
	s := newScreen(a, rec)

	toUpload(t, s)
	msg := submit(t, s, "palm.png")

	_, cmd := s.Update(msg)
	require.NotNil(t, cmd)
	assert.Equal(t, router.NavigateMsg{
		To: screen.PalmResult,
		Params: router.Params{
			screens.ParamHand:     wizard.HandRight,
			screens.ParamImage:    testImage,
			screens.ParamAnalysis: reading,
		},
	}, cmd())
	assert.Equal(t, 1, a.calls)
	assert.Empty(t, rec.Items)
	assert.False(t, s.Wizard().Analyzing())
}

func TestScanFailureReturnsToUpload(t *testing.T) {
	a := &fakeAnalyzer{err: &palm.GatewayError{Model: "m", Err: errors.New("boom")}}
	rec := &toast.Recorder{}
	s := newScreen(a, rec)

	toUpload(t, s)
	msg := submit(t, s, "palm.png")

	_, cmd := s.Update(msg)
	assert.Nil(t, cmd)
	assert.Equal(t, wizard.StepUpload, s.Wizard().Step())
	assert.False(t, s.Wizard().Analyzing())
	require.Len(t, rec.Items, 1)
	assert.Equal(t, FailureMessage, rec.Items[0].Text)
	assert.Equal(t, toast.Error, rec.Items[0].Kind)
}

func TestScanWithMockProvider(t *testing.T) {
	svc := palm.NewService(llm.NewOfflineProvider(), palm.DefaultConfig())
	s := newScreen(svc, nil)

	toUpload(t, s)
	msg := submit(t, s, "palm.png")

	_, cmd := s.Update(msg)
	require.NotNil(t, cmd)
	nav, ok := cmd().(router.NavigateMsg)
	require.True(t, ok)
	assert.Equal(t, screen.PalmResult, nav.To)
	r, ok := nav.Params[screens.ParamAnalysis].(*palm.Reading)
	require.True(t, ok)
	assert.NotEmpty(t, r.Summary)
}

func TestUnreadableImageStaysOnUpload(t *testing.T) {
	a := &fakeAnalyzer{}
	s := newScreen(a, nil)
	toUpload(t, s)

	s.input.Model.SetValue("missing.jpg")
	assert.Nil(t, press(s, tea.KeyEnter))
	assert.Equal(t, wizard.StepUpload, s.Wizard().Step())
	assert.Contains(t, s.inputErr, "no such file")
	assert.Zero(t, a.calls)
}

func TestStaleResultDiscarded(t *testing.T) {
	s := newScreen(&fakeAnalyzer{}, nil)
	toUpload(t, s)
	s.input.Model.SetValue("palm.png")
	press(s, tea.KeyEnter)

	_, cmd := s.Update(analysisMsg{scanID: "other", reading: &palm.Reading{}})
	assert.Nil(t, cmd)
	assert.True(t, s.Wizard().Analyzing())
}

func TestResultAfterCloseDiscarded(t *testing.T) {
	rec := &toast.Recorder{}
	s := newScreen(&fakeAnalyzer{err: errors.New("late")}, rec)
	toUpload(t, s)
	msg := submit(t, s, "palm.png")

	s.Close()
	_, cmd := s.Update(msg)
	assert.Nil(t, cmd)
	assert.Empty(t, rec.Items)
	assert.Equal(t, wizard.StepAnalyzing, s.Wizard().Step())
}

func TestBackAtHandSelectLeavesOnce(t *testing.T) {
	s := newScreen(&fakeAnalyzer{}, nil)

	cmd := s.HandleBack()
	require.NotNil(t, cmd)
	assert.Equal(t, router.NavigateMsg{To: screen.Home}, cmd())
	assert.Nil(t, s.HandleBack())
}

func TestBackStepsThroughWizard(t *testing.T) {
	s := newScreen(&fakeAnalyzer{}, nil)
	toUpload(t, s)

	assert.Nil(t, s.HandleBack())
	assert.Equal(t, wizard.StepGuide, s.Wizard().Step())
	assert.Nil(t, s.HandleBack())
	assert.Equal(t, wizard.StepHandSelect, s.Wizard().Step())
	assert.False(t, s.hands.Locked)
}

func TestBackIgnoredWhileAnalyzing(t *testing.T) {
	s := newScreen(&fakeAnalyzer{}, nil)
	toUpload(t, s)
	s.input.Model.SetValue("palm.png")
	press(s, tea.KeyEnter)

	assert.Nil(t, s.HandleBack())
	assert.Equal(t, wizard.StepAnalyzing, s.Wizard().Step())
}

func TestHandSelectDelay(t *testing.T) {
	s := New(i18n.New("en"), Options{Analyzer: &fakeAnalyzer{}, HandSelectDelay: DefaultHandSelectDelay})

	cmd := press(s, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, wizard.StepHandSelect, s.Wizard().Step())

	// Keys are ignored while the choice is locked.
	press(s, tea.KeyRight)
	assert.Equal(t, 0, s.hands.Selected)

	_, _ = s.Update(handChosenMsg{scanID: s.ScanID(), hand: wizard.HandLeft})
	assert.Equal(t, wizard.StepGuide, s.Wizard().Step())
	assert.Equal(t, wizard.HandLeft, s.Wizard().Session().Hand)
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  palm.jpg ", "palm.jpg"},
		{"'/tmp/my palm.jpg'", "/tmp/my palm.jpg"},
		{`"/tmp/a.png"`, "/tmp/a.png"},
		{`/tmp/my\ palm.jpg`, "/tmp/my palm.jpg"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanPath(tt.in), tt.in)
	}
}

func TestViewPerStep(t *testing.T) {
	s := newScreen(&fakeAnalyzer{}, nil)
	assert.Contains(t, s.View(80, 30), "Left")
	toUpload(t, s)
	s.input.Model.SetValue("palm.png")
	press(s, tea.KeyEnter)
	assert.Contains(t, s.View(80, 30), "Reading")
}
