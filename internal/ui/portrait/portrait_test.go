package portrait

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255}) //nolint:gosec // test pattern
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

type stubFetcher struct {
	data map[string][]byte
	err  error
}

func (s stubFetcher) FetchImage(_ context.Context, url string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data[url], nil
}

func TestThumbnail_FitsCells(t *testing.T) {
	out, err := Thumbnail(testJPEG(t, 300, 300), 4, 2)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	b := img.Bounds()
	assert.LessOrEqual(t, b.Dx(), 4*cellPixelWidth)
	assert.LessOrEqual(t, b.Dy(), 2*cellPixelHeight)
}

func TestThumbnail_InvalidData(t *testing.T) {
	_, err := Thumbnail([]byte("not an image"), 4, 2)
	assert.Error(t, err)
}

func TestTransmit_Chunks(t *testing.T) {
	small := Transmit([]byte("tiny"), 3)
	assert.Equal(t, 1, strings.Count(small, escStart))
	assert.Contains(t, small, "a=t,f=100,i=3,q=2,m=0;")

	big := Transmit(make([]byte, 4000), 7)
	assert.GreaterOrEqual(t, strings.Count(big, escStart), 2)
	assert.Contains(t, big, "i=7,q=2,m=1;")
	last := big[strings.LastIndex(big, escStart):]
	assert.True(t, strings.HasPrefix(last, escStart+"m=0;"))
	assert.Equal(t, 1, strings.Count(big, "i=7"))
}

func TestPlace(t *testing.T) {
	cmd := Place(5, 3, 10, 16, 8)
	assert.True(t, strings.HasPrefix(cmd, "\x1b[s\x1b[3;10H"))
	assert.Contains(t, cmd, "a=p,i=5,p=1,c=16,r=8")
	assert.True(t, strings.HasSuffix(cmd, "\x1b[u"))
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder(6, 4)
	lines := strings.Split(p, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "┌────┐", lines[0])
	assert.Contains(t, p, "?")
	assert.Empty(t, Placeholder(2, 4))
}

func TestBlank(t *testing.T) {
	assert.Equal(t, "   \n   ", Blank(3, 2))
	assert.Empty(t, Blank(0, 2))
}

func TestLoad(t *testing.T) {
	f := stubFetcher{data: map[string][]byte{"u1": testJPEG(t, 64, 64)}}

	msg, ok := Load(context.Background(), f, "u1", 4, 2)().(LoadedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, "u1", msg.URL)
	assert.NotEmpty(t, msg.PNG)

	msg = Load(context.Background(), stubFetcher{err: errors.New("boom")}, "u2", 4, 2)().(LoadedMsg)
	assert.Error(t, msg.Err)
	assert.Equal(t, "u2", msg.URL)
}

func TestRenderer_StoreTransmitsOnce(t *testing.T) {
	r := NewRenderer(4, 2)
	assert.False(t, r.Known("a"))

	r.Store(LoadedMsg{URL: "a", PNG: []byte("png")})
	r.Store(LoadedMsg{URL: "a", PNG: []byte("png")})

	assert.True(t, r.Known("a"))
	pending := r.TakePending()
	assert.Equal(t, 1, strings.Count(pending, "a=t"))
	assert.Empty(t, r.TakePending())
}

func TestRenderer_FailedIsKnown(t *testing.T) {
	r := NewRenderer(4, 2)
	r.Store(LoadedMsg{URL: "bad", Err: errors.New("404")})

	assert.True(t, r.Known("bad"))
	r.Show("bad")
	assert.False(t, r.Ready())
	assert.Empty(t, r.Placement(1, 1))
	assert.Equal(t, Placeholder(4, 2), r.Cell())
}

func TestRenderer_ShowAndPlacement(t *testing.T) {
	r := NewRenderer(4, 2)
	r.Store(LoadedMsg{URL: "a", PNG: []byte("png")})
	r.Show("a")

	assert.True(t, r.Ready())
	assert.Equal(t, "a", r.Current())
	assert.Equal(t, Place(1, 2, 3, 4, 2), r.Placement(2, 3))
	assert.Equal(t, Blank(4, 2), r.Cell())

	r.TakePending()
	r.Show("")
	assert.Equal(t, Hide(), r.TakePending())
	assert.Empty(t, r.Placement(2, 3))
}

func TestRenderer_Clear(t *testing.T) {
	r := NewRenderer(4, 2)
	r.Store(LoadedMsg{URL: "a", PNG: []byte("png")})
	r.Show("a")

	cmd := r.Clear()
	assert.Contains(t, cmd, "a=d,d=I,i=1")
	assert.False(t, r.Known("a"))
	assert.Empty(t, r.Current())
	assert.Empty(t, r.TakePending())
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeAuto, "AUTO": ModeAuto, "kitty": ModeKitty, " none ": ModeNone} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMode("sixel")
	assert.Error(t, err)
}

func clearTermEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CHARPICK_IMAGE_PROTOCOL", "CONTOUR_PROFILE", "KITTY_WINDOW_ID",
		"TERM_PROGRAM", "GHOSTTY_RESOURCES_DIR", "KONSOLE_VERSION",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("TERM", "xterm-256color")
}

func TestEnabled(t *testing.T) {
	clearTermEnv(t)

	assert.True(t, Enabled(ModeKitty))
	assert.False(t, Enabled(ModeNone))
	assert.False(t, Enabled(ModeAuto))

	t.Setenv("CHARPICK_IMAGE_PROTOCOL", "kitty")
	assert.True(t, Enabled(ModeAuto))
	assert.False(t, Enabled(ModeNone))

	t.Setenv("CHARPICK_IMAGE_PROTOCOL", "none")
	t.Setenv("KITTY_WINDOW_ID", "1")
	assert.False(t, Enabled(ModeAuto))
}

func TestIsKittySupported(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want bool
	}{
		{"kitty window", "KITTY_WINDOW_ID", "1", true},
		{"wezterm", "TERM_PROGRAM", "WezTerm", true},
		{"ghostty", "GHOSTTY_RESOURCES_DIR", "/usr/share/ghostty", true},
		{"new konsole", "KONSOLE_VERSION", "230801", true},
		{"old konsole", "KONSOLE_VERSION", "210401", false},
		{"kitty term", "TERM", "xterm-kitty", true},
		{"plain xterm", "TERM", "xterm", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTermEnv(t)
			t.Setenv(tt.key, tt.val)
			assert.Equal(t, tt.want, IsKittySupported())
		})
	}

	t.Run("contour wins", func(t *testing.T) {
		clearTermEnv(t)
		t.Setenv("KITTY_WINDOW_ID", "1")
		t.Setenv("CONTOUR_PROFILE", "default")
		assert.False(t, IsKittySupported())
	})
}
