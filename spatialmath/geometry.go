package spatialmath

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// GeometryType defines what geometry creator representations are known.
type GeometryType string

// The set of allowed representations for geometry.
const (
	BoxType      = GeometryType("box")
	SphereType   = GeometryType("sphere")
	CylinderType = GeometryType("cylinder")
)

// Geometry is an entry point with which to access all types of collision geometries.
type Geometry interface {
	Pose() Pose
	Label() string
	SetLabel(string)
	String() string
	// Transform premultiplies the geometry pose with a transform, allowing the geometry to be moved in space.
	Transform(Pose) Geometry
	// SignedDistanceToPoint is negative when pt is inside the geometry.
	SignedDistanceToPoint(pt r3.Vector) float64
	json.Marshaler
}

// GeometryConfig specifies the format of geometries specified through JSON configuration files.
// Dimensions and translations are in meters, orientation is roll/pitch/yaw in radians.
type GeometryConfig struct {
	Type GeometryType `json:"type"`

	// parameters used for defining a box's rectangular cross-section
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
	Z float64 `json:"z,omitempty"`

	// parameters used for defining a sphere or cylinder
	R float64 `json:"r,omitempty"`
	L float64 `json:"l,omitempty"`

	// define an offset to position the geometry
	TranslationOffset r3.Vector   `json:"translation"`
	OrientationOffset EulerAngles `json:"orientation"`

	Label string `json:"label,omitempty"`
}

// NewGeometryConfig creates a config for a Geometry from an offset Pose.
func NewGeometryConfig(g Geometry) (*GeometryConfig, error) {
	config := GeometryConfig{
		Label:             g.Label(),
		TranslationOffset: g.Pose().Point(),
		OrientationOffset: *g.Pose().Orientation().EulerAngles(),
	}
	switch gType := g.(type) {
	case *box:
		config.Type = BoxType
		config.X = 2 * gType.halfSize.X
		config.Y = 2 * gType.halfSize.Y
		config.Z = 2 * gType.halfSize.Z
	case *sphere:
		config.Type = SphereType
		config.R = gType.radius
	case *cylinder:
		config.Type = CylinderType
		config.R = gType.radius
		config.L = 2 * gType.halfLength
	default:
		return nil, newGeometryTypeUnsupportedError(fmt.Sprintf("%T", g))
	}
	return &config, nil
}

// ParseConfig converts a GeometryConfig into the correct Geometry type.
func (config *GeometryConfig) ParseConfig() (Geometry, error) {
	pose := NewPose(config.TranslationOffset, &config.OrientationOffset)
	switch config.Type {
	case BoxType:
		return NewBox(pose, r3.Vector{X: config.X, Y: config.Y, Z: config.Z}, config.Label)
	case SphereType:
		return NewSphere(pose, config.R, config.Label)
	case CylinderType:
		return NewCylinder(pose, config.R, config.L, config.Label)
	case GeometryType(""):
		return nil, errors.New("geometry type must be specified")
	default:
		return nil, newGeometryTypeUnsupportedError(string(config.Type))
	}
}

// NewGeometriesFromConfigs parses every config in order, failing on the first bad one.
func NewGeometriesFromConfigs(configs []GeometryConfig) ([]Geometry, error) {
	geometries := make([]Geometry, 0, len(configs))
	for i := range configs {
		g, err := configs[i].ParseConfig()
		if err != nil {
			return nil, errors.Wrapf(err, "geometry %d", i)
		}
		geometries = append(geometries, g)
	}
	return geometries, nil
}

// toLocal expresses the world point pt in the frame of pose.
func toLocal(pose Pose, pt r3.Vector) r3.Vector {
	q := pose.Orientation().Quaternion()
	d := pt.Sub(pose.Point())
	rotated := quat.Mul(quat.Mul(quat.Conj(q), quat.Number{Imag: d.X, Jmag: d.Y, Kmag: d.Z}), q)
	return r3.Vector{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}
}

func newBadGeometryDimensionsError(g Geometry) error {
	return errors.Errorf("cannot create %T with non-positive dimensions", g)
}

func newGeometryTypeUnsupportedError(geomType string) error {
	return errors.Errorf("geometry type %q is unsupported", geomType)
}

// maxVec returns the elementwise maximum of v and 0.
func maxVec(v r3.Vector) r3.Vector {
	return r3.Vector{X: math.Max(v.X, 0), Y: math.Max(v.Y, 0), Z: math.Max(v.Z, 0)}
}
