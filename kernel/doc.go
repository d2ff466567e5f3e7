/*
Package kernel implements the physical kernel (spec.md section 4.1): the
screened Coulomb potential between two sites, and the stability envelope
that turns a received-potential bound into a verdict about which charge
states a site could plausibly hold.

Every function here is pure and stateless; it is consumed by every other
package in the engine but never holds state of its own.
*/
package kernel
