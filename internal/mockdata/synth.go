// Package mockdata produces deterministic stand-in probabilities for the
// dashboard until a real model is connected.
package mockdata

import (
	"fmt"
	"hash/fnv"

	"github.com/jengzang/wildlife-bi-go/internal/heatmap"
	"github.com/jengzang/wildlife-bi-go/internal/mesh"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Seed hashes the selection tuple with FNV-1a
func Seed(species, baseDate, timeOfDay string, horizonDays int) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%d", species, baseDate, timeOfDay, horizonDays)
	return h.Sum64()
}

// Synthesize draws one value per centroid as u², u uniform on [0,1), seeded
// by the selection so the same inputs always give the same table. Ids come
// from the centroids' cell ids in order.
func Synthesize(centroids []mesh.Centroid, species, baseDate, timeOfDay string, horizonDays int) heatmap.Table {
	u := distuv.Uniform{
		Min: 0,
		Max: 1,
		Src: rand.NewSource(Seed(species, baseDate, timeOfDay, horizonDays)),
	}

	ids := make([]int, len(centroids))
	probs := make([]float64, len(centroids))
	for i, c := range centroids {
		ids[i] = c.CellID
		v := u.Rand()
		probs[i] = v * v
	}
	return heatmap.NewTable(ids, probs)
}
