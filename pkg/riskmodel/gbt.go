package riskmodel

import (
	"math/rand"
	"sort"

	"github.com/montanaflynn/stats"
)

// GBTConfig mirrors the tuned training configuration. Seed keeps row
// subsampling reproducible run to run.
type GBTConfig struct {
	Trees        int
	MaxDepth     int
	LearningRate float64
	Subsample    float64
	Seed         int64
}

var DefaultConfig = GBTConfig{
	Trees:        100,
	MaxDepth:     5,
	LearningRate: 0.1,
	Subsample:    1.0,
	Seed:         42,
}

// TreeNode is one node of a regression tree. Fields are exported for gob.
type TreeNode struct {
	Leaf      bool
	Value     float64
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
}

func (n *TreeNode) predict(x []float64) float64 {
	for !n.Leaf {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

// Ensemble is a gradient-boosted sum of regression trees over a constant base.
type Ensemble struct {
	Base         float64
	LearningRate float64
	Trees        []*TreeNode
}

func (e *Ensemble) Predict(x []float64) float64 {
	out := e.Base
	for _, t := range e.Trees {
		out += e.LearningRate * t.predict(x)
	}
	return out
}

const minLeafSize = 3

// fitEnsemble trains least-squares gradient boosting: each tree fits the
// residuals left by the trees before it.
func fitEnsemble(X [][]float64, y []float64, cfg GBTConfig) *Ensemble {
	base, _ := stats.Mean(y)
	e := &Ensemble{Base: base, LearningRate: cfg.LearningRate}

	rng := rand.New(rand.NewSource(cfg.Seed))

	pred := make([]float64, len(y))
	for i := range pred {
		pred[i] = base
	}

	resid := make([]float64, len(y))
	for t := 0; t < cfg.Trees; t++ {
		for i := range y {
			resid[i] = y[i] - pred[i]
		}

		idx := sampleRows(len(y), cfg.Subsample, rng)
		tree := fitTree(X, resid, idx, cfg.MaxDepth)
		e.Trees = append(e.Trees, tree)

		for i := range pred {
			pred[i] += cfg.LearningRate * tree.predict(X[i])
		}
	}
	return e
}

func sampleRows(n int, frac float64, rng *rand.Rand) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if frac >= 1 || frac <= 0 {
		return idx
	}
	rng.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	k := int(float64(n) * frac)
	if k < minLeafSize {
		k = minLeafSize
	}
	out := idx[:k]
	sort.Ints(out)
	return out
}

func fitTree(X [][]float64, target []float64, idx []int, depth int) *TreeNode {
	mean := 0.0
	for _, i := range idx {
		mean += target[i]
	}
	mean /= float64(len(idx))

	if depth == 0 || len(idx) < 2*minLeafSize {
		return &TreeNode{Leaf: true, Value: mean}
	}

	feat, thr, ok := bestSplit(X, target, idx)
	if !ok {
		return &TreeNode{Leaf: true, Value: mean}
	}

	var left, right []int
	for _, i := range idx {
		if X[i][feat] <= thr {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return &TreeNode{
		Feature:   feat,
		Threshold: thr,
		Left:      fitTree(X, target, left, depth-1),
		Right:     fitTree(X, target, right, depth-1),
	}
}

// bestSplit scans every feature for the threshold minimizing the summed
// squared error of the two halves. Sorted prefix sums keep it O(features *
// n log n) per node.
func bestSplit(X [][]float64, target []float64, idx []int) (int, float64, bool) {
	nFeatures := len(X[idx[0]])
	n := len(idx)

	var total, totalSq float64
	for _, i := range idx {
		total += target[i]
		totalSq += target[i] * target[i]
	}

	bestErr := totalSq - total*total/float64(n)
	bestFeat, bestThr := -1, 0.0

	order := make([]int, n)
	for f := 0; f < nFeatures; f++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return X[order[a]][f] < X[order[b]][f] })

		var leftSum, leftSq float64
		for pos := 0; pos < n-1; pos++ {
			i := order[pos]
			leftSum += target[i]
			leftSq += target[i] * target[i]

			cur, next := X[i][f], X[order[pos+1]][f]
			if cur == next {
				continue
			}
			nl, nr := pos+1, n-pos-1
			if nl < minLeafSize || nr < minLeafSize {
				continue
			}
			rightSum := total - leftSum
			rightSq := totalSq - leftSq
			err := (leftSq - leftSum*leftSum/float64(nl)) + (rightSq - rightSum*rightSum/float64(nr))
			if err < bestErr-1e-12 {
				bestErr = err
				bestFeat = f
				bestThr = (cur + next) / 2
			}
		}
	}

	return bestFeat, bestThr, bestFeat >= 0
}
