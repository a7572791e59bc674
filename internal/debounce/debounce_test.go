package debounce

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, v)
}

func (r *recorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestDebouncer_CollapsesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := New(300*time.Millisecond, rec.record)

		d.Call("r")
		time.Sleep(100 * time.Millisecond)
		d.Call("ri")
		time.Sleep(100 * time.Millisecond)
		d.Call("ric")

		time.Sleep(299 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.get(), "fired before quiet period elapsed")

		time.Sleep(2 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, []string{"ric"}, rec.get())
		assert.False(t, d.Pending())
	})
}

func TestDebouncer_SeparateBurstsFireSeparately(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := New(50*time.Millisecond, rec.record)

		d.Call("a")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		d.Call("b")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, []string{"a", "b"}, rec.get())
	})
}

func TestDebouncer_Cancel(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := New(50*time.Millisecond, rec.record)

		assert.False(t, d.Cancel(), "nothing pending yet")

		d.Call("x")
		assert.True(t, d.Pending())
		assert.True(t, d.Cancel())
		assert.False(t, d.Pending())

		time.Sleep(time.Second)
		synctest.Wait()
		assert.Empty(t, rec.get())
	})
}

func TestDebouncer_StopDropsPendingAndLaterCalls(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := New(50*time.Millisecond, rec.record)

		d.Call("pending")
		d.Stop()
		d.Call("after stop")
		d.Stop() // idempotent

		time.Sleep(time.Second)
		synctest.Wait()
		assert.Empty(t, rec.get())
		assert.False(t, d.Pending())
	})
}

func TestDebouncer_Delay(t *testing.T) {
	d := New(250*time.Millisecond, func(int) {})
	assert.Equal(t, 250*time.Millisecond, d.Delay())
}
