/*
Package layout loads the YAML description of a SiDB arrangement spec.md
section 6 takes as input: the sites (as SiQAD lattice cells), the crystal
orientation they sit on, and the physical parameters governing stability.
It validates the document with go-playground/validator and turns it into
a sidb.Layout the rest of the engine consumes.
*/
package layout
