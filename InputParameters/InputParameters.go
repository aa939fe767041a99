package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// DaymetCRS is the Lambert conformal conic projection DayMet data uses,
// in meters. It is carried as an opaque identifier.
const DaymetCRS = "+proj=lcc +lat_1=25 +lat_2=60 +lat_0=42.5 +lon_0=-100 +x_0=0 +y_0=0 +ellps=WGS84 +units=m +no_defs"

// Parameters obtained from the YAML input file
type DecodeParameters struct {
	Title        string  `json:"Title"`
	MeshFile     string  `json:"MeshFile"`
	Group        string  `json:"Group"`
	StrictLength bool    `json:"StrictLength"`
	Workers      int     `json:"Workers"`
	ZScale       float64 `json:"ZScale"`
	CRS          string  `json:"CRS"`
	Field        Field   `json:"Field"`
	Output       Output  `json:"Output"`
}

// Field names a per-element scalar dataset to overlay on the polygons
type Field struct {
	File    string `json:"File"` // Defaults to the mesh file
	Dataset string `json:"Dataset"`
	Name    string `json:"Name"`
	Step    int    `json:"Step"`
	Layer   int    `json:"Layer"`
}

// Output lists the files to write, empty entries are skipped
type Output struct {
	WKT           string `json:"WKT"`
	GeoJSON       string `json:"GeoJSON"`
	SQLite        string `json:"SQLite"`
	Preview       string `json:"Preview"`
	PreviewWidth  int    `json:"PreviewWidth"`
	PreviewHeight int    `json:"PreviewHeight"`

	// PreviewRange fixes the [min, max] shading range, empty uses the
	// field's whole-number bounds
	PreviewRange []float64 `json:"PreviewRange"`
}

func NewDecodeParameters() *DecodeParameters {
	return &DecodeParameters{
		Group:        "/0",
		StrictLength: true,
		Workers:      1,
		ZScale:       1,
		CRS:          DaymetCRS,
		Output: Output{
			PreviewWidth:  1024,
			PreviewHeight: 1024,
		},
	}
}

// Parse overlays the YAML document onto the current values
func (ip *DecodeParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return err
	}
	return ip.Validate()
}

func (ip *DecodeParameters) Validate() error {
	if ip.Workers < 1 {
		return fmt.Errorf("Workers must be at least 1, have %d", ip.Workers)
	}
	if ip.Field.Step < 0 {
		return fmt.Errorf("Field.Step must not be negative, have %d", ip.Field.Step)
	}
	if ip.Field.Layer < 0 {
		return fmt.Errorf("Field.Layer must not be negative, have %d", ip.Field.Layer)
	}
	if ip.Output.Preview != "" && (ip.Output.PreviewWidth <= 0 || ip.Output.PreviewHeight <= 0) {
		return fmt.Errorf("invalid preview size %dx%d", ip.Output.PreviewWidth, ip.Output.PreviewHeight)
	}
	if r := ip.Output.PreviewRange; len(r) != 0 && (len(r) != 2 || !(r[1] > r[0])) {
		return fmt.Errorf("PreviewRange must be [min, max] with max > min, have %v", r)
	}
	return nil
}

func (ip *DecodeParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t= MeshFile\n", ip.MeshFile)
	fmt.Printf("[%s]\t\t\t= Group\n", ip.Group)
	fmt.Printf("%v\t\t\t= StrictLength\n", ip.StrictLength)
	fmt.Printf("[%d]\t\t\t\t= Workers\n", ip.Workers)
	fmt.Printf("%8.5f\t\t= ZScale\n", ip.ZScale)
	if ip.Field.Dataset != "" {
		fmt.Printf("[%s:%s step %d layer %d]\t= Field\n", ip.Field.File, ip.Field.Dataset, ip.Field.Step, ip.Field.Layer)
	}
}
