package main

import "github.com/fwojciec/harvest"

// profile holds the defaults applied to a source shape.
type profile struct {
	Layout harvest.TableLayout
	Policy harvest.UniquePolicy
}

var profiles = map[harvest.SourceShape]profile{
	harvest.ShapePlain: {
		Layout: harvest.PhoneLayout,
		Policy: harvest.PolicyEmail,
	},
	harvest.ShapeAttribute: {
		Layout: harvest.PhoneLayout,
		Policy: harvest.PolicyEmail,
	},
	harvest.ShapeBlock: {
		Layout: harvest.TitleLayout,
		Policy: harvest.PolicyTriple,
	},
}

// profileFor returns the defaults for shape.
// Returns EINVALID for an unknown shape.
func profileFor(shape harvest.SourceShape) (profile, error) {
	p, ok := profiles[shape]
	if !ok {
		return profile{}, harvest.Errorf(harvest.EINVALID, "unknown source shape %q", string(shape))
	}
	return p, nil
}

// resolvePolicy returns override when set and the shape default otherwise.
func (p profile) resolvePolicy(override string) (harvest.UniquePolicy, error) {
	if override == "" {
		return p.Policy, nil
	}
	policy := harvest.UniquePolicy(override)
	if err := policy.Validate(); err != nil {
		return "", err
	}
	return policy, nil
}
