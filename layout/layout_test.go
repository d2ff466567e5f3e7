package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const validDoc = `
lattice: "100"
sites:
  - {x: 0, y: 0, z: 0}
  - {x: 1, y: 0, z: 0}
  - {x: 2, y: 0, z: 1}
physical:
  epsilon_r: 5.6
  lambda_tf_nm: 5.0
  mu_minus_ev: -0.32
  u: 0.59
  global_potential_ev: 0
  base: "2"
`

func TestLoadAndValidate(t *testing.T) {
	doc, err := Load(strings.NewReader(validDoc))
	require.NoError(t, err)
	require.NoError(t, doc.Validate())

	lyt := doc.ToLayout()
	require.Equal(t, 3, lyt.NumSites())
	require.Equal(t, int(2), lyt.Parameters().Base)
}

func TestValidateRejectsMissingSites(t *testing.T) {
	doc, err := Load(strings.NewReader(`
physical:
  epsilon_r: 5.6
  lambda_tf_nm: 5.0
  u: 0.59
`))
	require.NoError(t, err)
	require.Error(t, doc.Validate())
}

func TestValidateRejectsBadZ(t *testing.T) {
	doc, err := Load(strings.NewReader(`
sites:
  - {x: 0, y: 0, z: 5}
physical:
  epsilon_r: 5.6
  lambda_tf_nm: 5.0
  u: 0.59
`))
	require.NoError(t, err)
	require.Error(t, doc.Validate())
}
