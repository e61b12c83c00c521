package resolution

import (
	"sort"

	"github.com/tripframe/itinerary-backend-go/internal/extraction"
	"github.com/tripframe/itinerary-backend-go/internal/models"
	"github.com/tripframe/itinerary-backend-go/internal/spatial"
)

// Config holds the resolver's tunable thresholds. The defaults are
// configuration, not proven-optimal constants; the property tests pin the
// behavior, not the numbers.
type Config struct {
	SimilarityThreshold  float64 // text merge threshold on Levenshtein ratio
	GeoMergeRadiusMeters float64 // centroid distance for geo merges
	ConfidenceFloor      float64 // resolved candidates below this are dropped
	DuplicateBoost       float64 // added per extra independent sighting
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold:  0.85,
		GeoMergeRadiusMeters: 50,
		ConfidenceFloor:      0.50,
		DuplicateBoost:       0.10,
	}
}

// Resolver merges near-duplicate candidates into confidence-ranked places.
// It is a pure function over its input: no I/O, no shared state.
type Resolver struct {
	cfg Config
}

// NewResolver creates a resolver with the given thresholds.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// member is a candidate admitted to clustering, carrying its original input
// position for display tie-breaks.
type member struct {
	cand       models.Candidate
	normalized string
	inputIndex int
}

// Resolve clusters the candidates in two passes (text similarity, then geo
// proximity over centroids) and aggregates each cluster. Output cluster
// membership and confidence are identical for any permutation of the input;
// only display tie-breaks consult original input order. Malformed entries
// (names that normalize to nothing) are dropped, never reported as errors.
func (r *Resolver) Resolve(candidates []models.Candidate) ([]models.ResolvedCandidate, []models.MergeRecord) {
	members := admit(candidates)
	if len(members) == 0 {
		return nil, nil
	}

	// Canonical processing order: a total order over the candidates
	// themselves, so pair iteration cannot depend on input order.
	sort.Slice(members, func(i, j int) bool {
		a, b := members[i], members[j]
		if a.normalized != b.normalized {
			return a.normalized < b.normalized
		}
		if a.cand.Source != b.cand.Source {
			return a.cand.Source < b.cand.Source
		}
		if a.cand.ImageIndex != b.cand.ImageIndex {
			return a.cand.ImageIndex < b.cand.ImageIndex
		}
		return a.inputIndex < b.inputIndex
	})

	uf := newUnionFind(len(members))

	// Text-similarity pass. Union-find makes the merge transitive: a chain
	// of pairwise-similar names collapses into one cluster.
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			if Similarity(members[i].normalized, members[j].normalized) >= r.cfg.SimilarityThreshold {
				uf.union(i, j)
			}
		}
	}

	clusters := uf.components()

	// Geo-proximity pass, run to a fixed point: merging two clusters moves
	// the centroid, which can pull a third cluster inside the radius.
	for {
		merged := r.mergeByProximity(members, clusters)
		if len(merged) == len(clusters) {
			break
		}
		clusters = merged
	}

	return r.aggregate(members, clusters)
}

// admit filters out candidates whose names normalize to nothing and records
// input positions.
func admit(candidates []models.Candidate) []member {
	members := make([]member, 0, len(candidates))
	for i, c := range candidates {
		normalized := extraction.Normalize(c.RawName)
		if normalized == "" {
			continue
		}
		members = append(members, member{cand: c, normalized: normalized, inputIndex: i})
	}
	return members
}

// mergeByProximity unions clusters whose geo centroids sit within the merge
// radius, regardless of text similarity. Clusters without any located member
// never geo-merge.
func (r *Resolver) mergeByProximity(members []member, clusters [][]int) [][]int {
	centroids := make([]spatial.Point, len(clusters))
	located := make([]bool, len(clusters))
	for ci, cluster := range clusters {
		if p, ok := clusterCentroid(members, cluster); ok {
			centroids[ci] = p
			located[ci] = true
		}
	}

	uf := newUnionFind(len(clusters))
	for i := 0; i < len(clusters); i++ {
		if !located[i] {
			continue
		}
		for j := i + 1; j < len(clusters); j++ {
			if !located[j] {
				continue
			}
			d := spatial.HaversineDistance(centroids[i].Lat, centroids[i].Lng, centroids[j].Lat, centroids[j].Lng)
			if d <= r.cfg.GeoMergeRadiusMeters {
				uf.union(i, j)
			}
		}
	}

	var merged [][]int
	for _, group := range uf.components() {
		var indices []int
		for _, ci := range group {
			indices = append(indices, clusters[ci]...)
		}
		sort.Ints(indices)
		merged = append(merged, indices)
	}
	return merged
}

func clusterCentroid(members []member, cluster []int) (spatial.Point, bool) {
	var points []spatial.Point
	for _, mi := range cluster {
		if members[mi].cand.HasCoords {
			points = append(points, spatial.Point{Lat: members[mi].cand.Lat, Lng: members[mi].cand.Lng})
		}
	}
	if len(points) == 0 {
		return spatial.Point{}, false
	}
	return spatial.Centroid(points), true
}

// aggregate produces one resolved candidate per cluster, applies the
// confidence floor, and sorts by confidence descending (stable on first
// appearance in the original input).
func (r *Resolver) aggregate(members []member, clusters [][]int) ([]models.ResolvedCandidate, []models.MergeRecord) {
	type ranked struct {
		resolved   models.ResolvedCandidate
		firstInput int
		merges     []models.MergeRecord
	}

	results := make([]ranked, 0, len(clusters))
	for _, cluster := range clusters {
		rep := cluster[0]
		firstInput := members[rep].inputIndex
		for _, mi := range cluster {
			m := members[mi]
			// Representative: highest confidence, ties to the earliest input.
			if m.cand.Confidence > members[rep].cand.Confidence ||
				(m.cand.Confidence == members[rep].cand.Confidence && m.inputIndex < members[rep].inputIndex) {
				rep = mi
			}
			if m.inputIndex < firstInput {
				firstInput = m.inputIndex
			}
		}

		confidence := members[rep].cand.Confidence + r.cfg.DuplicateBoost*float64(len(cluster)-1)
		if confidence > 1.0 {
			confidence = 1.0
		}

		resolved := models.ResolvedCandidate{
			Name:        members[rep].cand.RawName,
			Confidence:  confidence,
			MemberCount: len(cluster),
			Description: clusterDescription(members, cluster, rep),
		}
		if p, ok := clusterCentroid(members, cluster); ok {
			resolved.Lat = p.Lat
			resolved.Lng = p.Lng
			resolved.HasCoords = true
		}

		var merges []models.MergeRecord
		seen := map[string]struct{}{}
		for _, mi := range orderByInput(members, cluster) {
			if mi == rep {
				continue
			}
			name := members[mi].cand.RawName
			if name == resolved.Name {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			merges = append(merges, models.MergeRecord{OriginalName: name, MergedIntoName: resolved.Name})
		}

		results = append(results, ranked{resolved: resolved, firstInput: firstInput, merges: merges})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].resolved.Confidence != results[j].resolved.Confidence {
			return results[i].resolved.Confidence > results[j].resolved.Confidence
		}
		return results[i].firstInput < results[j].firstInput
	})

	var out []models.ResolvedCandidate
	var merges []models.MergeRecord
	for _, res := range results {
		if res.resolved.Confidence < r.cfg.ConfidenceFloor {
			continue
		}
		out = append(out, res.resolved)
		merges = append(merges, res.merges...)
	}
	return out, merges
}

// orderByInput returns the cluster's member indices sorted by original input
// position, for stable user-facing merge records.
func orderByInput(members []member, cluster []int) []int {
	ordered := append([]int(nil), cluster...)
	sort.Slice(ordered, func(i, j int) bool {
		return members[ordered[i]].inputIndex < members[ordered[j]].inputIndex
	})
	return ordered
}

func clusterDescription(members []member, cluster []int, rep int) string {
	if d := members[rep].cand.Description; d != "" {
		return d
	}
	for _, mi := range orderByInput(members, cluster) {
		if d := members[mi].cand.Description; d != "" {
			return d
		}
	}
	return ""
}
