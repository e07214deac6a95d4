package colour

import (
	"fmt"
	"math"
	"sort"
)

// ClusterThreshold is the RGB-space distance within which an incoming
// colour joins an existing cluster instead of founding a new one.
const ClusterThreshold = 30.0

// Analysis summarises a colour sequence.
type Analysis struct {
	Average  RGB `json:"average"`
	Dominant RGB `json:"dominant"`
	Least    RGB `json:"least"`
}

// cluster is an online aggregate of perceptually similar colours: a
// running centroid and a membership count. Centroids update via an
// incremental mean, so memory stays O(1) per cluster regardless of
// membership size.
type cluster struct {
	r, g, b float64
	count   int
}

func (c *cluster) centroid() RGB {
	return RGB{
		R: roundChannel(c.r),
		G: roundChannel(c.g),
		B: roundChannel(c.b),
	}
}

func (c *cluster) add(rgb RGB) {
	c.count++
	n := float64(c.count)
	c.r += (float64(rgb.R) - c.r) / n
	c.g += (float64(rgb.G) - c.g) / n
	c.b += (float64(rgb.B) - c.b) / n
}

func (c *cluster) distanceTo(rgb RGB) float64 {
	dr := float64(rgb.R) - c.r
	dg := float64(rgb.G) - c.g
	db := float64(rgb.B) - c.b
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Analyze performs a single pass of incremental clustering over the
// sequence and derives its average, dominant and least-used colours.
//
// Each colour is assigned to the first cluster, in creation order,
// whose centroid lies within ClusterThreshold; otherwise it founds a
// new cluster. Cluster quality therefore depends on input order. That
// rule is kept deliberately: it makes output reproducible for a given
// sequence.
func Analyze(seq []RGB) (Analysis, error) {
	if len(seq) == 0 {
		return Analysis{}, fmt.Errorf("cannot analyze an empty colour sequence")
	}

	var sumR, sumG, sumB float64
	var clusters []*cluster

	for _, c := range seq {
		sumR += float64(c.R)
		sumG += float64(c.G)
		sumB += float64(c.B)

		assigned := false
		for _, cl := range clusters {
			if cl.distanceTo(c) <= ClusterThreshold {
				cl.add(c)
				assigned = true
				break
			}
		}
		if !assigned {
			clusters = append(clusters, &cluster{
				r:     float64(c.R),
				g:     float64(c.G),
				b:     float64(c.B),
				count: 1,
			})
		}
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].count > clusters[j].count
	})

	n := float64(len(seq))
	return Analysis{
		Average: RGB{
			R: roundChannel(sumR / n),
			G: roundChannel(sumG / n),
			B: roundChannel(sumB / n),
		},
		Dominant: clusters[0].centroid(),
		Least:    clusters[len(clusters)-1].centroid(),
	}, nil
}

func roundChannel(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}
