package vision

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"leafcheck/internal/domain/entity"
)

func TestLoadFile_FitsMaxSide(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaf.png")
	require.NoError(t, imaging.Save(imaging.New(200, 100, leafGreen), path))

	img, err := LoadFile(path, 50)
	require.NoError(t, err)
	require.Equal(t, image.Pt(50, 25), img.Bounds().Size())

	img, err = LoadFile(path, 0)
	require.NoError(t, err)
	require.Equal(t, image.Pt(200, 100), img.Bounds().Size())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.jpg"), 0)
	require.ErrorIs(t, err, entity.ErrLoadFailure)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"), 1024)
	require.ErrorIs(t, err, entity.ErrLoadFailure)
}
