package layout

import (
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SiteSpec is one dopant's SiQAD lattice cell.
type SiteSpec struct {
	X int `yaml:"x" validate:"gte=0"`
	Y int `yaml:"y" validate:"gte=0"`
	Z int `yaml:"z" validate:"oneof=0 1"`
}

// PhysicalSpec is the YAML shape of kernel.PhysicalParameters.
type PhysicalSpec struct {
	EpsilonR          float64 `yaml:"epsilon_r" validate:"gt=0"`
	LambdaTFNm        float64 `yaml:"lambda_tf_nm" validate:"gt=0"`
	MuMinusEV         float64 `yaml:"mu_minus_ev"`
	U                 float64 `yaml:"u" validate:"gt=0"`
	GlobalPotentialEV float64 `yaml:"global_potential_ev"`
	Base              string  `yaml:"base" validate:"omitempty,oneof=2 3"`
}

// Document is the top-level YAML shape this package loads: the sites, the
// lattice orientation they were placed on, and the physical parameters.
type Document struct {
	Lattice  string       `yaml:"lattice" validate:"omitempty,oneof=100 111"`
	Sites    []SiteSpec   `yaml:"sites" validate:"required,min=1,dive"`
	Physical PhysicalSpec `yaml:"physical" validate:"required"`
}

var validate = validator.New()

// Load decodes a Document from r. It does not validate; call Validate
// afterward.
func Load(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "layout: decoding document")
	}
	return &doc, nil
}

// Validate checks every structural constraint the YAML shape carries
// (required fields, value ranges, enum membership).
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return errors.Wrap(err, "layout: invalid document")
	}
	return nil
}
