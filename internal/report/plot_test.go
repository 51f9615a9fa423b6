package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezoic/splitcheck/internal/demo"
	scErrors "github.com/ezoic/splitcheck/pkg/errors"
)

func runBoth(t *testing.T) []*demo.Result {
	t.Helper()
	noSplit, err := demo.RunWithoutSplit()
	require.NoError(t, err)
	split, err := demo.RunWithSplit()
	require.NoError(t, err)
	return []*demo.Result{noSplit, split}
}

func TestPlotFit_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fit.png")
	require.NoError(t, PlotFit(runBoth(t), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")), "not a PNG file")
}

func TestWriteFit_SVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFit(runBoth(t), &buf, "svg"))
	assert.Contains(t, buf.String(), "<svg")
}

func TestPlotFit_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fit.bmp")
	err := PlotFit(runBoth(t), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, scErrors.ErrInvalidInput))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be created for an unsupported format")
}

func TestWriteFit_NoResults(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFit(nil, &buf, "png")
	assert.True(t, errors.Is(err, scErrors.ErrInvalidInput))

	err = WriteFit([]*demo.Result{{Variant: demo.VariantNoSplit}}, &buf, "png")
	assert.True(t, errors.Is(err, scErrors.ErrInvalidInput))
}

func TestRowsXY(t *testing.T) {
	X, y := demo.Dataset()

	all := rowsXY(X, y, nil)
	require.Len(t, all, 3)
	assert.Equal(t, 3.0, all[2].X)
	assert.Equal(t, 4.0, all[2].Y)

	heldOut := rowsXY(X, y, []int{0})
	require.Len(t, heldOut, 1)
	assert.Equal(t, 1.0, heldOut[0].X)
	assert.Equal(t, 2.0, heldOut[0].Y)
}
