/*
Package sidb describes the physical data model shared by every layer of the
ground state space engine: dopant site indices, the three-valued charge
state alphabet, and the lattice-orientation capability that turns a 2D SiQAD
coordinate into a nanometer position.

None of the types here carry solver state; they are the vocabulary the
cluster, projection and driver packages are built from.
*/
package sidb
