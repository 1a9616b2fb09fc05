package stages

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purrgress/purrgress/pkg/errors"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func testRunner(t *testing.T, stageList []Stage, opts ...Option) (*Runner, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	all := append([]Option{WithWriter(&buf), WithRefresh(0)}, opts...)
	r, err := NewRunner(stageList, all...)
	require.NoError(t, err)
	return r, &buf
}

func TestNewRunnerValidation(t *testing.T) {
	tests := []struct {
		name    string
		stages  []Stage
		wantErr string
	}{
		{
			name:    "no stages",
			stages:  nil,
			wantErr: "at least one stage",
		},
		{
			name:    "unnamed stage",
			stages:  []Stage{{Name: "", Weight: 1}},
			wantErr: "needs a name",
		},
		{
			name:    "zero weight",
			stages:  []Stage{{Name: "build", Weight: 0}},
			wantErr: "non-positive weight",
		},
		{
			name:    "negative weight",
			stages:  []Stage{{Name: "build", Weight: -2}},
			wantErr: "non-positive weight",
		},
		{
			name:   "valid pipeline",
			stages: []Stage{{Name: "build", Weight: 3}, {Name: "test", Weight: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(tt.stages)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsConfig(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewRunnerRejectsBadOptions(t *testing.T) {
	_, err := NewRunner([]Stage{{Name: "build", Weight: 1}}, WithTrackWidth(-1))
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))
	assert.Contains(t, err.Error(), "track width")

	_, err = NewRunner([]Stage{{Name: "build", Weight: 1}}, WithRefresh(-time.Second))
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))
	assert.Contains(t, err.Error(), "refresh rate")
}

func TestStartPaintsInitialBlock(t *testing.T) {
	r, buf := testRunner(t, []Stage{{Name: "build", Weight: 3}, {Name: "test", Weight: 1}})

	require.NoError(t, r.Start())

	out := buf.String()
	assert.Contains(t, out, "( o.o )")
	assert.Contains(t, out, "zzZ  |_|  Zzz")
	assert.Contains(t, out, "Current Stage: build")
	assert.Contains(t, out, "Stage Progress: "+strings.Repeat("░", 20)+" 0.0%")
	assert.Contains(t, out, "Overall Progress: "+strings.Repeat("░", 20)+" 0.0%")
}

func TestLifecycleErrors(t *testing.T) {
	r, _ := testRunner(t, []Stage{{Name: "build", Weight: 1}})

	err := r.Advance(0.5)
	require.Error(t, err)
	assert.True(t, errors.IsState(err))
	assert.Contains(t, err.Error(), "not started")

	require.NoError(t, r.Start())

	err = r.Start()
	require.Error(t, err)
	assert.True(t, errors.IsState(err))
	assert.Contains(t, err.Error(), "already started")

	require.NoError(t, r.Finish())

	err = r.Advance(0.5)
	require.Error(t, err)
	assert.True(t, errors.IsState(err))

	err = r.NextStage()
	require.Error(t, err)
	assert.True(t, errors.IsState(err))
}

func TestNextStagePastEnd(t *testing.T) {
	r, _ := testRunner(t, []Stage{{Name: "only", Weight: 1}})
	require.NoError(t, r.Start())
	require.NoError(t, r.NextStage())

	err := r.NextStage()
	require.Error(t, err)
	assert.True(t, errors.IsState(err))
	assert.Contains(t, err.Error(), "already finished")

	err = r.Advance(0.5)
	require.Error(t, err)
	assert.True(t, errors.IsState(err))
}

func TestWeightedOverall(t *testing.T) {
	r, _ := testRunner(t, []Stage{{Name: "build", Weight: 3}, {Name: "test", Weight: 1}})
	require.NoError(t, r.Start())
	assert.InDelta(t, 0.0, r.Overall(), 1e-9)

	require.NoError(t, r.Advance(0.5))
	assert.InDelta(t, 0.375, r.Overall(), 1e-9)

	require.NoError(t, r.NextStage())
	assert.InDelta(t, 0.75, r.Overall(), 1e-9)
	assert.Equal(t, "test", r.CurrentStage())

	require.NoError(t, r.Advance(0.5))
	assert.InDelta(t, 0.875, r.Overall(), 1e-9)

	require.NoError(t, r.Finish())
	assert.InDelta(t, 1.0, r.Overall(), 1e-9)
	assert.Equal(t, "complete", r.CurrentStage())
}

func TestStageTrackFills(t *testing.T) {
	r, buf := testRunner(t, []Stage{{Name: "load", Weight: 1}}, WithTrackWidth(10))
	require.NoError(t, r.Start())
	buf.Reset()

	require.NoError(t, r.Advance(0.5))

	out := buf.String()
	assert.Contains(t, out, "Stage Progress: █████░░░░░ 50.0%")
	assert.Contains(t, out, "Overall Progress: █████░░░░░ 50.0%")
}

func TestAdvanceClampsFraction(t *testing.T) {
	r, buf := testRunner(t, []Stage{{Name: "load", Weight: 1}}, WithTrackWidth(10))
	require.NoError(t, r.Start())
	buf.Reset()

	require.NoError(t, r.Advance(4.2))
	assert.Contains(t, buf.String(), "██████████ 100.0%")
	buf.Reset()

	require.NoError(t, r.Advance(-1))
	assert.Contains(t, buf.String(), "░░░░░░░░░░ 0.0%")
}

func TestPhaseSpriteFollowsOverall(t *testing.T) {
	r, buf := testRunner(t, []Stage{{Name: "load", Weight: 1}})
	require.NoError(t, r.Start())
	assert.Contains(t, buf.String(), "( o.o )")
	buf.Reset()

	require.NoError(t, r.Advance(0.25))
	assert.Contains(t, buf.String(), "( @.@ )")
	buf.Reset()

	require.NoError(t, r.Advance(0.5))
	assert.Contains(t, buf.String(), "( ^.^ )")
	buf.Reset()

	require.NoError(t, r.Advance(0.7))
	assert.Contains(t, buf.String(), "( >o< )")
	buf.Reset()

	require.NoError(t, r.Finish())
	assert.Contains(t, buf.String(), "( ^ω^ )")
}

func TestThrottleDropsIntermediatePaints(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	r, buf := testRunner(t, []Stage{{Name: "build", Weight: 1}, {Name: "test", Weight: 1}},
		WithRefresh(50*time.Millisecond), WithClock(clock.Now))
	require.NoError(t, r.Start())
	buf.Reset()

	require.NoError(t, r.Advance(0.1))
	assert.Empty(t, buf.String())

	clock.advance(60 * time.Millisecond)
	require.NoError(t, r.Advance(0.2))
	assert.Contains(t, buf.String(), "Stage Progress:")
	buf.Reset()

	require.NoError(t, r.NextStage())
	assert.Contains(t, buf.String(), "Current Stage: test")
}

func TestFinishIdempotent(t *testing.T) {
	r, buf := testRunner(t, []Stage{{Name: "build", Weight: 1}})
	require.NoError(t, r.Start())
	buf.Reset()

	require.NoError(t, r.Finish())
	out := buf.String()
	assert.Contains(t, out, "Current Stage: complete")
	assert.Contains(t, out, "Stage Progress: "+strings.Repeat("█", 20)+" 100.0%")
	assert.Contains(t, out, "Overall Progress: "+strings.Repeat("█", 20)+" 100.0%")

	buf.Reset()
	require.NoError(t, r.Finish())
	assert.Empty(t, buf.String())
}

func TestFinishWithoutStartProducesNoOutput(t *testing.T) {
	r, buf := testRunner(t, []Stage{{Name: "build", Weight: 1}})
	require.NoError(t, r.Finish())
	assert.Empty(t, buf.String())
}
