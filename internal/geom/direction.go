package geom

// ArcDirection selects the sweep direction of a circular arc. Angles are
// measured from the positive x axis towards the positive y axis.
type ArcDirection int

const (
	// ArcPositive sweeps with increasing angle.
	ArcPositive ArcDirection = iota
	// ArcNegative sweeps with decreasing angle.
	ArcNegative
)

func (d ArcDirection) String() string {
	if d == ArcNegative {
		return "negative"
	}
	return "positive"
}
