package kernel

import "math"

// coulombConstantEVNM is k*e expressed in eV*nm, the usual unit choice for
// SiDB electrostatics so that a potential computed from a distance in
// nanometers comes out directly in electronvolts (equivalently, volts for
// an elementary charge).
const coulombConstantEVNM = 1.439964395175277

// popStabilityErr is a small additive tolerance folded into the four band
// edges of the stability envelope (spec.md 4.1).
const popStabilityErr = 0.005

// PhysicalParameters are the caller-supplied constants the kernel and the
// rest of the engine are parameterized by. EpsilonR, LambdaTFNm, U and Base
// are validated upstream (package layout) before a run starts; the core
// assumes them well-formed (spec.md section 7).
type PhysicalParameters struct {
	// EpsilonR is the relative permittivity, > 0.
	EpsilonR float64
	// LambdaTFNm is the Thomas-Fermi screening distance in nanometers, > 0.
	LambdaTFNm float64
	// MuMinusEV is the negative of the 0/- transition level, in eV.
	MuMinusEV float64
	// U is the on-site charging energy, fixed by the physical model.
	U float64
	// GlobalPotentialEV is an optional uniform potential offset applied to
	// every site.
	GlobalPotentialEV float64
	// Base selects the charge-state alphabet.
	Base int
}

// MuPlus returns mu+ = mu- + U.
func (p PhysicalParameters) MuPlus() float64 {
	return p.MuMinusEV + p.U
}

// CoulombPotential returns the screened Coulomb potential, in volts,
// contributed at a distance of distanceNM nanometers under p.
//
//	V(d) = (k*e / d) * exp(-d / lambda_TF) / epsilon_r
func CoulombPotential(distanceNM float64, p PhysicalParameters) float64 {
	if distanceNM <= 0 {
		panic("kernel: non-positive distance")
	}
	return (coulombConstantEVNM / distanceNM) * math.Exp(-distanceNM/p.LambdaTFNm) / p.EpsilonR
}

// StabilityEnvelope holds the four band edges derived from mu- and mu+,
// plus the four predicates of spec.md 4.1 that classify a received
// potential bound against them.
type StabilityEnvelope struct {
	// ENUpper = POP_STABILITY_ERR - mu-
	ENUpper float64
	// ENLower = -POP_STABILITY_ERR - mu-
	ENLower float64
	// EPUpper = POP_STABILITY_ERR - mu+
	EPUpper float64
	// EPLower = -POP_STABILITY_ERR - mu+
	EPLower float64
}

// NewStabilityEnvelope derives the four band edges from p.
func NewStabilityEnvelope(p PhysicalParameters) StabilityEnvelope {
	return StabilityEnvelope{
		ENUpper: popStabilityErr - p.MuMinusEV,
		ENLower: -popStabilityErr - p.MuMinusEV,
		EPUpper: popStabilityErr - p.MuPlus(),
		EPLower: -popStabilityErr - p.MuPlus(),
	}
}

// FailsNegative is true iff even the most pro-negative received-potential
// bound falsifies negativity at a site bound by v.
func (e StabilityEnvelope) FailsNegative(v float64) bool {
	return v > e.ENUpper
}

// FailsPositive is true iff even the most pro-positive received-potential
// bound falsifies positivity at a site bound by v.
func (e StabilityEnvelope) FailsPositive(v float64) bool {
	return v < e.EPLower
}

// UpperBoundFailsNeutral is true iff the upper received-potential bound
// already falls below the band that allows neutrality.
func (e StabilityEnvelope) UpperBoundFailsNeutral(vUpperBound float64) bool {
	return vUpperBound < e.ENLower
}

// LowerBoundFailsNeutral is true iff the lower received-potential bound
// already rises above the band that allows neutrality.
func (e StabilityEnvelope) LowerBoundFailsNeutral(vLowerBound float64) bool {
	return vLowerBound > e.EPUpper
}
