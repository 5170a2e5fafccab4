package costmap

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/golang/geo/r2"
	_ "github.com/jbuchbinder/gopnm" // registers the PGM/PPM/PBM decoders
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gridplan/gridmap"
)

// Map is an occupancy grid together with its world placement.
type Map struct {
	Meta
	Grid *gridmap.GridMap
}

// FromOccupancy wraps a row-major occupancy array (row 0 at the bottom)
// of values in [-1, 100].
func FromOccupancy(meta Meta, data []int8) (*Map, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	gm, err := gridmap.FromRowMajor(meta.Width, meta.Height, data)
	if err != nil {
		return nil, err
	}

	return &Map{Meta: meta, Grid: gm}, nil
}

// Image interpretation modes of a map file.
const (
	ModeTrinary = "trinary"
	ModeScale   = "scale"
)

// MapFile is the map_server YAML description of a map image.
//
//	image: office.pgm
//	resolution: 0.05
//	origin: [-10.0, -10.0, 0.0]
//	negate: 0
//	occupied_thresh: 0.65
//	free_thresh: 0.196
//	mode: trinary
type MapFile struct {
	Image          string    `yaml:"image"`
	Resolution     float64   `yaml:"resolution"`
	Origin         []float64 `yaml:"origin"`
	Negate         int       `yaml:"negate"`
	OccupiedThresh float64   `yaml:"occupied_thresh"`
	FreeThresh     float64   `yaml:"free_thresh"`
	Mode           string    `yaml:"mode"`
}

// ParseMapFile decodes a map YAML document, filling in map_server defaults
// for the thresholds and the mode.
func ParseMapFile(data []byte) (MapFile, error) {
	mf := MapFile{OccupiedThresh: 0.65, FreeThresh: 0.196, Mode: ModeTrinary}
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return MapFile{}, fmt.Errorf("%w: %v", ErrBadMetadata, err)
	}
	if err := mf.Validate(); err != nil {
		return MapFile{}, err
	}

	return mf, nil
}

// Validate reports every invalid field, each wrapping ErrBadMetadata.
func (mf MapFile) Validate() error {
	var err error
	if mf.Image == "" {
		err = multierr.Append(err, fmt.Errorf("%w: image is required", ErrBadMetadata))
	}
	if !(mf.Resolution > 0) {
		err = multierr.Append(err, fmt.Errorf("%w: resolution must be positive, got %g", ErrBadMetadata, mf.Resolution))
	}
	if len(mf.Origin) < 2 {
		err = multierr.Append(err, fmt.Errorf("%w: origin needs x and y, got %v", ErrBadMetadata, mf.Origin))
	}
	if mf.FreeThresh < 0 || mf.OccupiedThresh > 1 || mf.FreeThresh >= mf.OccupiedThresh {
		err = multierr.Append(err, fmt.Errorf("%w: thresholds free=%g occupied=%g", ErrBadMetadata, mf.FreeThresh, mf.OccupiedThresh))
	}
	if mf.Mode != ModeTrinary && mf.Mode != ModeScale {
		err = multierr.Append(err, fmt.Errorf("%w: unknown mode %q", ErrBadMetadata, mf.Mode))
	}

	return err
}

// Load reads a map YAML file and the image it names. A relative image path
// is resolved against the YAML file's directory.
func Load(yamlPath string) (*Map, error) {
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		return nil, fmt.Errorf("costmap: read %s: %w", yamlPath, err)
	}
	mf, err := ParseMapFile(data)
	if err != nil {
		return nil, err
	}
	imgPath := mf.Image
	if !filepath.IsAbs(imgPath) {
		imgPath = filepath.Join(filepath.Dir(yamlPath), imgPath)
	}
	raw, err := os.ReadFile(imgPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImage, err)
	}

	return Decode(mf, bytes.NewReader(raw))
}

// Decode converts an image stream into a Map using the thresholds of mf.
// Image row 0 becomes the top grid row.
func Decode(mf MapFile, r io.Reader) (*Map, error) {
	if err := mf.Validate(); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImage, err)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrImage)
	}

	data := make([]int8, w*h)
	for row := 0; row < h; row++ {
		y := h - 1 - row
		for x := 0; x < w; x++ {
			v := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+row)).(color.Gray).Y
			data[y*w+x] = mf.occupancy(v)
		}
	}
	meta := Meta{
		Resolution: mf.Resolution,
		Origin:     r2.Point{X: mf.Origin[0], Y: mf.Origin[1]},
		Width:      w,
		Height:     h,
	}

	return FromOccupancy(meta, data)
}

// occupancy maps a grey level to a cost. Dark pixels are occupied unless
// the file sets negate.
func (mf MapFile) occupancy(v uint8) int8 {
	p := float64(255-int(v)) / 255
	if mf.Negate != 0 {
		p = float64(v) / 255
	}
	switch {
	case p > mf.OccupiedThresh:
		return gridmap.CostOccupied
	case p < mf.FreeThresh:
		return gridmap.CostFree
	case mf.Mode == ModeScale:
		return int8(math.Round(99 * (p - mf.FreeThresh) / (mf.OccupiedThresh - mf.FreeThresh)))
	default:
		return gridmap.CostUnknown
	}
}
