package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenterNotifyAndExpire(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCenter(time.Second)
	c.now = func() time.Time { return now }

	c.Notify("saved", Success)
	c.Notify("oops", Error)

	active := c.Active()
	require.Len(t, active, 2)
	assert.Equal(t, int64(1), active[0].ID)
	assert.Equal(t, int64(2), active[1].ID)
	assert.Equal(t, Error, active[1].Kind)

	now = now.Add(2 * time.Second)
	assert.Empty(t, c.Active())
	assert.Equal(t, 0, c.Len())
}

func TestCenterIDsKeepIncreasing(t *testing.T) {
	c := NewCenter(0)
	c.Notify("a", Info)
	c.Active()
	c.Notify("b", Info)
	active := c.Active()
	require.Len(t, active, 2)
	assert.Less(t, active[0].ID, active[1].ID)
}

func TestRecorderCounts(t *testing.T) {
	var r Recorder
	r.Notify("x", Error)
	r.Notify("y", Info)
	r.Notify("z", Error)
	assert.Equal(t, 2, r.Count(Error))
	assert.Equal(t, 1, r.Count(Info))
	assert.Equal(t, 0, r.Count(Success))
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "", Render(nil, 40))
	assert.Contains(t, Render([]Toast{{Text: "hello", Kind: Info}}, 40), "hello")
}
