// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

package recommend

import "math"

// pairedCosine computes cosine similarity between two rating vectors
// restricted to their shared dimensions. dim selects the dimension axis
// (item id for user vectors, user id for item vectors).
//
// Pairing is asymmetric on duplicate entries: every entry of va contributes,
// while vb is indexed by first occurrence per dimension. Duplicate (user,
// item) ratings are legal input, and this pairing rule is part of the
// documented contract rather than something to normalize away.
//
// Norms are taken over the paired subspace only, not the full vectors.
// Returns exactly 0 when the paired set is empty or either norm is zero.
func pairedCosine(va, vb []Rating, dim func(Rating) int) float64 {
	if len(va) == 0 || len(vb) == 0 {
		return 0
	}

	first := make(map[int]int, len(vb))
	for _, r := range vb {
		d := dim(r)
		if _, ok := first[d]; !ok {
			first[d] = r.Score
		}
	}

	var dot, normA, normB float64
	for _, r := range va {
		sb, ok := first[dim(r)]
		if !ok {
			continue
		}
		sa := float64(r.Score)
		dot += sa * float64(sb)
		normA += sa * sa
		normB += float64(sb) * float64(sb)
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func itemDim(r Rating) int { return r.ItemID }
func userDim(r Rating) int { return r.UserID }

// userSimilarity is cosine similarity between two users' rating vectors
// over the items both have rated.
func (s *Snapshot) userSimilarity(a, b int) float64 {
	return pairedCosine(s.byUser[a], s.byUser[b], itemDim)
}

// itemSimilarity is cosine similarity between two items' rating vectors
// over the users who rated both.
func (s *Snapshot) itemSimilarity(a, b int) float64 {
	return pairedCosine(s.byItem[a], s.byItem[b], userDim)
}
