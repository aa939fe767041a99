package readers

import (
	"fmt"

	"gonum.org/v1/hdf5"

	"github.com/notargets/vismesh/mesh"
)

// Dataset paths inside a mesh group
const (
	NodesDataset         = "Mesh/Nodes"
	MixedElementsDataset = "Mesh/MixedElements"
	ElementMapDataset    = "Mesh/ElementMap"
)

// DefaultGroup is the group ATS writes the first mesh under
const DefaultGroup = "/0"

// MeshData is the raw content of an ATS mesh group
type MeshData struct {
	Nodes         mesh.NodeTable
	MixedElements []int
	ElementCount  int
}

// Decode runs the decoder over the group's arrays
func (md *MeshData) Decode(d mesh.Decoder) ([]mesh.ElementPolygon, error) {
	return d.Decode(md.Nodes, md.MixedElements, md.ElementCount)
}

// ReadATSMesh reads node coordinates, the mixed element stream and the
// element count from group in an HDF5 mesh file
func ReadATSMesh(filename, group string) (md *MeshData, err error) {
	var (
		f *hdf5.File
		g *hdf5.Group
	)
	if f, err = hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY); err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	defer f.Close()
	if g, err = f.OpenGroup(group); err != nil {
		return nil, fmt.Errorf("%s: opening group %s: %w", filename, group, err)
	}
	defer g.Close()

	md = &MeshData{}
	var (
		coords []float64
		dims   []uint
	)
	if coords, dims, err = readFloat64(g, NodesDataset); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if len(dims) != 2 {
		return nil, fmt.Errorf("%s: %s has rank %d, expected 2", filename, NodesDataset, len(dims))
	}
	if md.Nodes, err = mesh.NewNodeTableFromFlat(coords, int(dims[1])); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", filename, NodesDataset, err)
	}
	if md.MixedElements, _, err = readInt(g, MixedElementsDataset); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if dims, err = datasetDims(g, ElementMapDataset); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("%s: %s is a scalar", filename, ElementMapDataset)
	}
	md.ElementCount = int(dims[0])
	return md, nil
}

// ReadField reads a per-element scalar array for numElements surface
// elements. A rank-1 dataset holds one cycle; higher ranks are
// [cycle][element...] and row step is taken. When a row holds
// numElements*nLayers values, as for a column mesh, value e*nLayers+layer
// is taken for each surface element e. numElements <= 0 returns the row
// unchanged.
func ReadField(filename, dataset string, step, layer, numElements int) (values []float64, err error) {
	var (
		f    *hdf5.File
		data []float64
		dims []uint
	)
	if f, err = hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY); err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	defer f.Close()
	if data, dims, err = readFloat64(f, dataset); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	var row []float64
	switch len(dims) {
	case 0:
		return nil, fmt.Errorf("%s: %s is a scalar", filename, dataset)
	case 1:
		if step != 0 {
			return nil, fmt.Errorf("%s: step %d out of range [0,1) for %s", filename, step, dataset)
		}
		row = data
	default:
		nSteps := int(dims[0])
		rowLen := dimsProduct(dims[1:])
		if step < 0 || step >= nSteps {
			return nil, fmt.Errorf("%s: step %d out of range [0,%d) for %s", filename, step, nSteps, dataset)
		}
		row = data[step*rowLen : (step+1)*rowLen]
	}
	if values, err = SelectLayer(row, numElements, layer); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", filename, dataset, err)
	}
	return values, nil
}

// SelectLayer extracts one layer from an element-major row of
// numElements*nLayers values
func SelectLayer(row []float64, numElements, layer int) (values []float64, err error) {
	if numElements <= 0 {
		if layer != 0 {
			return nil, fmt.Errorf("layer %d requires the surface element count", layer)
		}
		return row, nil
	}
	if len(row)%numElements != 0 {
		return nil, fmt.Errorf("%d values do not divide into layers of %d elements", len(row), numElements)
	}
	nLayers := len(row) / numElements
	if layer < 0 || layer >= nLayers {
		return nil, fmt.Errorf("layer %d out of range [0,%d)", layer, nLayers)
	}
	if nLayers == 1 {
		return row, nil
	}
	values = make([]float64, numElements)
	for e := range values {
		values[e] = row[e*nLayers+layer]
	}
	return values, nil
}

// datasetOpener is satisfied by both *hdf5.File and *hdf5.Group
type datasetOpener interface {
	OpenDataset(name string) (*hdf5.Dataset, error)
}

func datasetDims(loc datasetOpener, name string) (dims []uint, err error) {
	var ds *hdf5.Dataset
	if ds, err = loc.OpenDataset(name); err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", name, err)
	}
	defer ds.Close()
	return extentDims(ds, name)
}

func extentDims(ds *hdf5.Dataset, name string) (dims []uint, err error) {
	space := ds.Space()
	defer space.Close()
	if dims, _, err = space.SimpleExtentDims(); err != nil {
		return nil, fmt.Errorf("reading extent of %s: %w", name, err)
	}
	return dims, nil
}

func dimsProduct(dims []uint) (n int) {
	n = 1
	for _, d := range dims {
		n *= int(d)
	}
	return
}

func readFloat64(loc datasetOpener, name string) (data []float64, dims []uint, err error) {
	var ds *hdf5.Dataset
	if ds, err = loc.OpenDataset(name); err != nil {
		return nil, nil, fmt.Errorf("opening dataset %s: %w", name, err)
	}
	defer ds.Close()
	if dims, err = extentDims(ds, name); err != nil {
		return nil, nil, err
	}
	data = make([]float64, dimsProduct(dims))
	if err = ds.Read(&data); err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, dims, nil
}

// readInt reads an integer dataset of any stored width; HDF5 converts to
// the 64-bit memory type
func readInt(loc datasetOpener, name string) (data []int, dims []uint, err error) {
	var ds *hdf5.Dataset
	if ds, err = loc.OpenDataset(name); err != nil {
		return nil, nil, fmt.Errorf("opening dataset %s: %w", name, err)
	}
	defer ds.Close()
	if dims, err = extentDims(ds, name); err != nil {
		return nil, nil, err
	}
	raw := make([]int64, dimsProduct(dims))
	if err = ds.Read(&raw); err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", name, err)
	}
	data = make([]int, len(raw))
	for i, v := range raw {
		data[i] = int(v)
	}
	return data, dims, nil
}
