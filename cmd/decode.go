/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/vismesh/InputParameters"
	"github.com/notargets/vismesh/export"
	"github.com/notargets/vismesh/mesh"
	"github.com/notargets/vismesh/mesh/readers"
	"github.com/notargets/vismesh/plot"
)

// DecodeCmd represents the decode command
var DecodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode the mixed-element mesh of an ATS file into polygons",
	Long: `
Reads Mesh/Nodes, Mesh/MixedElements and the Mesh/ElementMap length from a
group of an ATS HDF5 file, rebuilds one polygon per element and optionally
writes WKT, GeoJSON, SQLite and a WebP preview.

vismesh decode -F visdump_surface_mesh.h5 --geojson surface.geojson`,
	Run: func(cmd *cobra.Command, args []string) {
		ip, err := decodeParameters(cmd)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		profileDir, _ := cmd.Flags().GetString("profile")
		var prof interface{ Stop() }
		if profileDir != "" {
			prof = profile.Start(profile.CPUProfile, profile.ProfilePath(profileDir), profile.NoShutdownHook)
		}
		ip.Print()
		err = RunDecode(ip)
		if prof != nil {
			prof.Stop()
		}
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(DecodeCmd)
	addDecodeFlags(DecodeCmd)
}

func addDecodeFlags(c *cobra.Command) {
	def := InputParameters.NewDecodeParameters()
	c.Flags().StringP("meshFile", "F", "", "ATS mesh file in HDF5 (.h5) format")
	c.Flags().StringP("inputParametersFile", "I", "", "YAML file for decode parameters like:\n\t- Group\n\t- Field\n\t- Output")
	c.Flags().String("group", def.Group, "HDF5 group holding the Mesh datasets")
	c.Flags().Bool("strict", def.StrictLength, "fail when the element stream holds values past the declared element count")
	c.Flags().IntP("workers", "n", def.Workers, "number of goroutines decoding element ranges")
	c.Flags().Float64("zScale", def.ZScale, "multiplier applied to node z coordinates")
	c.Flags().String("crs", def.CRS, "coordinate reference system identifier attached to GeoJSON output")
	c.Flags().String("fieldFile", "", "HDF5 file holding a per-element field (defaults to the mesh file)")
	c.Flags().String("fieldDataset", "", "dataset path of a per-element field")
	c.Flags().Int("fieldStep", 0, "cycle index of a [cycle][element] field")
	c.Flags().Int("fieldLayer", 0, "cell of each column to take from a layered [cycle][element*layer] field")
	c.Flags().String("wkt", "", "write polygons as WKT, one per line")
	c.Flags().String("geojson", "", "write polygons as a GeoJSON FeatureCollection")
	c.Flags().String("sqlite", "", "write polygons into an SQLite elements table")
	c.Flags().String("preview", "", "write a WebP raster preview")
	c.Flags().String("profile", "", "directory for a CPU profile")
}

// decodeParameters layers the run parameters: built-in defaults, the root
// config file, the YAML input file, then flags given on the command line
func decodeParameters(cmd *cobra.Command) (ip *InputParameters.DecodeParameters, err error) {
	ip = InputParameters.NewDecodeParameters()
	if viper.IsSet("group") {
		ip.Group = viper.GetString("group")
	}
	if viper.IsSet("workers") {
		ip.Workers = viper.GetInt("workers")
	}
	if viper.IsSet("strict") {
		ip.StrictLength = viper.GetBool("strict")
	}
	if viper.IsSet("crs") {
		ip.CRS = viper.GetString("crs")
	}
	flags := cmd.Flags()
	if icFile, _ := flags.GetString("inputParametersFile"); icFile != "" {
		var data []byte
		if data, err = os.ReadFile(icFile); err != nil {
			return nil, err
		}
		if err = ip.Parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", icFile, err)
		}
	}
	if flags.Changed("meshFile") {
		ip.MeshFile, _ = flags.GetString("meshFile")
	}
	if flags.Changed("group") {
		ip.Group, _ = flags.GetString("group")
	}
	if flags.Changed("strict") {
		ip.StrictLength, _ = flags.GetBool("strict")
	}
	if flags.Changed("workers") {
		ip.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("zScale") {
		ip.ZScale, _ = flags.GetFloat64("zScale")
	}
	if flags.Changed("crs") {
		ip.CRS, _ = flags.GetString("crs")
	}
	if flags.Changed("fieldFile") {
		ip.Field.File, _ = flags.GetString("fieldFile")
	}
	if flags.Changed("fieldDataset") {
		ip.Field.Dataset, _ = flags.GetString("fieldDataset")
	}
	if flags.Changed("fieldStep") {
		ip.Field.Step, _ = flags.GetInt("fieldStep")
	}
	if flags.Changed("fieldLayer") {
		ip.Field.Layer, _ = flags.GetInt("fieldLayer")
	}
	for name, dst := range map[string]*string{
		"wkt":     &ip.Output.WKT,
		"geojson": &ip.Output.GeoJSON,
		"sqlite":  &ip.Output.SQLite,
		"preview": &ip.Output.Preview,
	} {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	if len(ip.MeshFile) == 0 {
		return nil, fmt.Errorf("must supply a mesh file (-F, --meshFile) in ATS HDF5 (.h5) format")
	}
	if err = ip.Validate(); err != nil {
		return nil, err
	}
	return ip, nil
}

// RunDecode reads the mesh named in ip and decodes it
func RunDecode(ip *InputParameters.DecodeParameters) (err error) {
	var md *readers.MeshData
	if ip.Group == readers.DefaultGroup {
		md, err = readers.ReadMeshFile(ip.MeshFile)
	} else {
		md, err = readers.ReadMeshGroup(ip.MeshFile, ip.Group)
	}
	if err != nil {
		return err
	}
	var values []float64
	if ip.Field.Dataset != "" {
		fieldFile := ip.Field.File
		if fieldFile == "" {
			fieldFile = ip.MeshFile
		}
		if values, err = readers.ReadField(fieldFile, ip.Field.Dataset, ip.Field.Step, ip.Field.Layer, md.ElementCount); err != nil {
			return err
		}
	}
	return decodeMesh(ip, md, values)
}

func decodeMesh(ip *InputParameters.DecodeParameters, md *readers.MeshData, values []float64) (err error) {
	if ip.ZScale != 1 {
		md.Nodes = md.Nodes.ScaleZ(ip.ZScale)
	}
	var polygons []mesh.ElementPolygon
	if polygons, err = md.Decode(mesh.Decoder{StrictLength: ip.StrictLength, Workers: ip.Workers}); err != nil {
		return err
	}
	var field *mesh.ElementField
	if values != nil {
		name := ip.Field.Name
		if name == "" {
			name = "value"
		}
		if field, err = mesh.NewElementField(name, polygons, values); err != nil {
			return err
		}
	}
	var EToE [][]int
	if EToE, err = mesh.Adjacency(polygons, md.Nodes.Len()); err != nil {
		return err
	}
	if err = printStatistics(md, polygons, field, EToE); err != nil {
		return err
	}
	return writeOutputs(ip, polygons, field, EToE)
}

func printStatistics(md *readers.MeshData, polygons []mesh.ElementPolygon, field *mesh.ElementField, EToE [][]int) error {
	fmt.Printf("Mesh Statistics:\n")
	fmt.Printf("  Nodes: %d\n", md.Nodes.Len())
	fmt.Printf("  Elements: %d\n", len(polygons))
	counts := mesh.CountByTag(polygons)
	tags := make([]int, 0, len(counts))
	for t := range counts {
		tags = append(tags, int(t))
	}
	sort.Ints(tags)
	fmt.Printf("  Element types:\n")
	for _, t := range tags {
		fmt.Printf("    %s: %d\n", mesh.ElementTag(t), counts[mesh.ElementTag(t)])
	}
	if rows, _, err := mesh.ScanRows(md.MixedElements, md.ElementCount); err == nil {
		unused := mesh.UnreferencedNodes(rows, md.Nodes.Len())
		fmt.Printf("  Unreferenced nodes: %d\n", unused.GetCardinality())
	}
	var area float64
	for _, p := range polygons {
		area += p.Area()
	}
	box := mesh.MeshBounds(polygons)
	fmt.Printf("  Planar area: %g\n", area)
	fmt.Printf("  Bounds: [%g, %g] x [%g, %g]\n", box.Min.X, box.Max.X, box.Min.Y, box.Max.Y)
	boundary, err := mesh.BoundaryElements(polygons, EToE)
	if err != nil {
		return err
	}
	fmt.Printf("  Boundary elements: %d\n", len(boundary))
	if field != nil {
		if vMin, vMax, ok := field.Bounds(); ok {
			fmt.Printf("  Field %s: [%g, %g]\n", field.Name, vMin, vMax)
		}
	}
	return nil
}

func writeOutputs(ip *InputParameters.DecodeParameters, polygons []mesh.ElementPolygon, field *mesh.ElementField,
	EToE [][]int) (err error) {
	out := ip.Output
	if out.WKT != "" {
		if err = writeFile(out.WKT, func(f *os.File) error {
			return export.WriteWKT(f, polygons)
		}); err != nil {
			return err
		}
	}
	if out.GeoJSON != "" {
		if err = writeFile(out.GeoJSON, func(f *os.File) error {
			return export.WriteGeoJSON(f, polygons, field, ip.CRS)
		}); err != nil {
			return err
		}
	}
	if out.SQLite != "" {
		if err = export.WriteSQLite(out.SQLite, polygons, field, EToE); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", out.SQLite)
	}
	if out.Preview != "" {
		pm := plot.PreviewMeta{
			Width:  out.PreviewWidth,
			Height: out.PreviewHeight,
			Margin: 0.05,
		}
		if len(out.PreviewRange) == 2 {
			pm.VMin, pm.VMax = out.PreviewRange[0], out.PreviewRange[1]
		}
		img, err := plot.RenderPreview(polygons, field, pm)
		if err != nil {
			return err
		}
		if err = writeFile(out.Preview, func(f *os.File) error {
			return plot.WriteWebP(f, img)
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
