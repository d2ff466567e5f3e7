package enumerate

import (
	"github.com/pkg/errors"

	"github.com/sidblab/gss/cluster"
	"github.com/sidblab/gss/sidb"
)

// ValidateConfiguration re-derives cfg independently of Enumerate's own
// walk, confirming it is actually reachable by following some composition
// recorded under top's charge space down to the leaves. This catches a
// configuration a caller assembled or edited by hand and that no longer
// corresponds to anything the driver actually produced: a site missing
// from cfg, an extra site, or a leaf charge state that disagrees with
// every composition on file for the corresponding root multiset.
//
// A per-site "not simultaneously negative and positive" check was
// considered and dropped (see DESIGN.md): Configuration's map type already
// makes that structurally impossible, and every site belongs to exactly
// one leaf in the cluster tree, so there is no pair of compositions that
// could ever disagree about a shared site. The real feasibility question
// in this domain is derivability, not per-site conflict, so that is what
// this function checks.
func ValidateConfiguration(top *cluster.Cluster, cfg Configuration) error {
	if len(cfg) != top.Size() {
		return errors.Errorf("enumerate: configuration names %d sites, cluster covers %d", len(cfg), top.Size())
	}
	for _, s := range top.Sites {
		if _, ok := cfg[s]; !ok {
			return errors.Errorf("enumerate: configuration has no charge state for site %d", s)
		}
	}
	m := multisetOf(cfg, top.Sites)
	if !derivable(top, m, cfg) {
		return errors.New("enumerate: configuration is not derivable from any composition on file")
	}
	return nil
}

// multisetOf summarizes cfg's charge states over sites as a Multiset.
func multisetOf(cfg Configuration, sites []sidb.Site) cluster.Multiset {
	var m cluster.Multiset
	for _, s := range sites {
		switch cfg[s] {
		case sidb.Negative:
			m.Neg++
		case sidb.Positive:
			m.Pos++
		default:
			m.Neut++
		}
	}
	return m
}

// derivable reports whether m is on file for c and, for a leaf, whether
// cfg agrees with it, or, for a composite, whether at least one recorded
// composition of m derives all the way down to leaves consistent with cfg.
func derivable(c *cluster.Cluster, m cluster.Multiset, cfg Configuration) bool {
	if !c.ChargeSpace().Contains(m) {
		return false
	}
	if c.IsLeaf() {
		return cfg[c.Sites[0]] == singletonChargeState(m)
	}
	for _, comp := range c.ChargeSpace().Compositions(m) {
		if derivable(comp[0].Child, comp[0].M, cfg) && derivable(comp[1].Child, comp[1].M, cfg) {
			return true
		}
	}
	return false
}
