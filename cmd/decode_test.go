package cmd

import (
	"database/sql"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"

	"github.com/notargets/vismesh/InputParameters"
	"github.com/notargets/vismesh/mesh"
	"github.com/notargets/vismesh/mesh/readers"
)

func newTestDecodeCmd(t *testing.T, args ...string) *cobra.Command {
	c := &cobra.Command{Use: "decode"}
	addDecodeFlags(c)
	require.NoError(t, c.Flags().Parse(args))
	return c
}

func unitSquareMesh(t *testing.T) *readers.MeshData {
	nodes, err := mesh.NewNodeTable([][]float64{
		{0, 0, 0}, {1, 0, 1}, {1, 1, 2}, {0, 1, 3},
	})
	require.NoError(t, err)
	return &readers.MeshData{
		Nodes:         nodes,
		MixedElements: []int{4, 0, 1, 2, 4, 0, 2, 3},
		ElementCount:  2,
	}
}

func TestDecodeParametersLayering(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("workers", 3)
	viper.Set("group", "/7")

	icFile := filepath.Join(t.TempDir(), "decode.yaml")
	require.NoError(t, os.WriteFile(icFile, []byte(`
Title: Layered
Group: /12
ZScale: 5
Output:
  WKT: from_file.wkt
`), 0644))

	c := newTestDecodeCmd(t, "-F", "mesh.h5", "-I", icFile, "--zScale", "2", "--geojson", "out.geojson",
		"--fieldDataset", "saturation", "--fieldLayer", "4")
	ip, err := decodeParameters(c)
	require.NoError(t, err)
	assert.Equal(t, "mesh.h5", ip.MeshFile)
	// Config file
	assert.Equal(t, 3, ip.Workers)
	// Input file over config file
	assert.Equal(t, "/12", ip.Group)
	assert.Equal(t, "from_file.wkt", ip.Output.WKT)
	// Flags over input file
	assert.Equal(t, 2., ip.ZScale)
	assert.Equal(t, "out.geojson", ip.Output.GeoJSON)
	assert.Equal(t, "saturation", ip.Field.Dataset)
	assert.Equal(t, 4, ip.Field.Layer)
	// Untouched defaults
	assert.True(t, ip.StrictLength)
	assert.Equal(t, InputParameters.DaymetCRS, ip.CRS)
}

func TestDecodeParametersErrors(t *testing.T) {
	t.Cleanup(viper.Reset)
	_, err := decodeParameters(newTestDecodeCmd(t))
	assert.ErrorContains(t, err, "must supply a mesh file")

	_, err = decodeParameters(newTestDecodeCmd(t, "-F", "mesh.h5", "-n", "0"))
	assert.ErrorContains(t, err, "Workers must be at least 1")

	_, err = decodeParameters(newTestDecodeCmd(t, "-F", "mesh.h5", "--fieldLayer", "-1"))
	assert.ErrorContains(t, err, "Field.Layer")

	_, err = decodeParameters(newTestDecodeCmd(t, "-F", "mesh.h5", "-I", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestDecodeMeshOutputs(t *testing.T) {
	dir := t.TempDir()
	ip := InputParameters.NewDecodeParameters()
	ip.MeshFile = "mesh.h5"
	ip.Workers = 2
	ip.ZScale = 10
	ip.Field.Name = "depth"
	ip.Output.WKT = filepath.Join(dir, "mesh.wkt")
	ip.Output.GeoJSON = filepath.Join(dir, "mesh.geojson")
	ip.Output.SQLite = filepath.Join(dir, "mesh.db")
	ip.Output.Preview = filepath.Join(dir, "mesh.webp")
	ip.Output.PreviewWidth, ip.Output.PreviewHeight = 64, 32
	ip.Output.PreviewRange = []float64{0, 0.5}

	md := unitSquareMesh(t)
	require.NoError(t, decodeMesh(ip, md, []float64{0.25, 0.75}))
	assert.Equal(t, 30., md.Nodes[3][2])

	data, err := os.ReadFile(ip.Output.WKT)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{
		"POLYGON ((0 0, 1 0, 1 1, 0 0))",
		"POLYGON ((0 0, 1 1, 0 1, 0 0))",
	}, lines)

	data, err = os.ReadFile(ip.Output.GeoJSON)
	require.NoError(t, err)
	assert.Contains(t, string(data), "FeatureCollection")
	assert.Contains(t, string(data), "depth")

	db, err := sql.Open("sqlite", ip.Output.SQLite)
	require.NoError(t, err)
	defer db.Close()
	// The two triangles share the diagonal 0-2 and have no other neighbor
	rows, err := db.Query("SELECT element, nneighbors, value FROM elements ORDER BY element")
	require.NoError(t, err)
	defer rows.Close()
	var got [][3]float64
	for rows.Next() {
		var (
			element, nneighbors int
			value               float64
		)
		require.NoError(t, rows.Scan(&element, &nneighbors, &value))
		got = append(got, [3]float64{float64(element), float64(nneighbors), value})
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, [][3]float64{{0, 1, 0.25}, {1, 1, 0.75}}, got)

	// The fixed range [0, 0.5] puts 0.25 mid-gray and clamps 0.75 to light
	f, err := os.Open(ip.Output.Preview)
	require.NoError(t, err)
	defer f.Close()
	img, err := webp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 128, G: 128, B: 128, A: 255}, color.RGBAModel.Convert(img.At(39, 23)))
	assert.Equal(t, color.RGBA{R: 224, G: 224, B: 224, A: 255}, color.RGBAModel.Convert(img.At(24, 8)))
}

func TestDecodeMeshErrors(t *testing.T) {
	ip := InputParameters.NewDecodeParameters()

	md := unitSquareMesh(t)
	md.MixedElements = append(md.MixedElements, 4)
	assert.ErrorIs(t, decodeMesh(ip, md, nil), mesh.ErrTrailingElementData)

	ip.StrictLength = false
	md = unitSquareMesh(t)
	md.MixedElements = append(md.MixedElements, 4)
	assert.NoError(t, decodeMesh(ip, md, nil))

	md = unitSquareMesh(t)
	md.MixedElements[3] = 9
	assert.ErrorIs(t, decodeMesh(ip, md, nil), mesh.ErrNodeIndexOutOfRange)

	md = unitSquareMesh(t)
	assert.ErrorContains(t, decodeMesh(ip, md, []float64{1}), "each polygon must correspond to a field value")
}
