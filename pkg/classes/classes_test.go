package classes

import (
	"image/color"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSet(t *testing.T) {
	s := DefaultSet()
	require.Equal(t, 6, s.Count())
	c, ok := s.Get(0)
	require.True(t, ok)
	require.Equal(t, "object 1", c.Name)
	require.Equal(t, color.RGBA{R: 255, A: 255}, c.RGBA())
	require.False(t, s.Has(6))
	require.Equal(t, c, s.First())
}

func TestSetValidation(t *testing.T) {
	_, err := NewSet([]Class{})
	require.Error(t, err)
	_, err = NewSet([]Class{{0, "a", "#ff0000"}, {0, "b", "#00ff00"}})
	require.Error(t, err)
	_, err = NewSet([]Class{{-1, "a", "#ff0000"}})
	require.Error(t, err)
	_, err = NewSet([]Class{{0, "", "#ff0000"}})
	require.Error(t, err)
	_, err = NewSet([]Class{{0, "a", "red"}})
	require.Error(t, err)
	_, err = NewSet([]Class{{0, "a", "#ff00"}})
	require.Error(t, err)
}

func TestContrastColor(t *testing.T) {
	black := color.RGBA{A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	require.Equal(t, white, Class{0, "a", "#ff0000"}.ContrastColor()) // brightness 76
	require.Equal(t, black, Class{1, "b", "#00ff00"}.ContrastColor()) // brightness 149
	require.Equal(t, black, Class{2, "c", "#ffff00"}.ContrastColor())
	require.Equal(t, white, Class{3, "d", "#0000ff"}.ContrastColor())
}

func TestLoad(t *testing.T) {
	fn := t.TempDir() + "/classes.json"
	require.NoError(t, os.WriteFile(fn, []byte(`[{"id":0,"name":"cat","color":"#112233"},{"id":1,"name":"dog","color":"#445566"}]`), 0644))
	s, err := Load(fn)
	require.NoError(t, err)
	require.Equal(t, 2, s.Count())
	c, ok := s.Get(1)
	require.True(t, ok)
	require.Equal(t, "dog", c.Name)
	require.Equal(t, color.RGBA{R: 0x44, G: 0x55, B: 0x66, A: 255}, c.RGBA())

	_, err = Load(t.TempDir() + "/missing.json")
	require.Error(t, err)
}
