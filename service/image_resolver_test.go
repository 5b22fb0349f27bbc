package service

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, path string, c color.Color, asJPEG bool) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 40, 30))
	for x := 0; x < 40; x++ {
		for y := 0; y < 30; y++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	if asJPEG {
		require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 95}))
		return
	}
	require.NoError(t, png.Encode(f, img))
}

func TestResolve_NormalizesSizeAndFlattensTransparency(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "X1.png"), color.NRGBA{}, false)

	img := NewImageResolver(dir).Resolve("X1")
	require.NotNil(t, img)
	assert.Equal(t, 215, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	r, g, b, a := img.At(100, 100).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff, 0xffff}, []uint32{r, g, b, a})
}

func TestResolve_ExtensionOrder(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "X1.png"), color.NRGBA{B: 255, A: 255}, false)
	writeImage(t, filepath.Join(dir, "X1.jpg"), color.NRGBA{R: 255, A: 255}, true)

	img := NewImageResolver(dir).Resolve("X1")
	require.NotNil(t, img)

	r, _, b, _ := img.At(100, 100).RGBA()
	assert.Greater(t, r, uint32(0xc000), ".jpg wins over .png")
	assert.Less(t, b, uint32(0x4000))
}

func TestResolve_MissingOrCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "BAD.jpg"), []byte("not an image"), 0644))
	r := NewImageResolver(dir)

	assert.Nil(t, r.Resolve("NOPE"))
	assert.Nil(t, r.Resolve("BAD"))
	assert.Nil(t, r.Resolve(""))
}

func TestImageBaseName(t *testing.T) {
	assert.Equal(t, "A1", ImageBaseName("A1"))
	assert.Equal(t, "A1", ImageBaseName("nested/A1.png"))
	assert.Equal(t, "A1", ImageBaseName(" A1 "))
	assert.Equal(t, "", ImageBaseName(""))
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(NormalizeImage(image.NewRGBA(image.Rect(0, 0, 5, 5))))
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 215, 200), decoded.Bounds())
}
