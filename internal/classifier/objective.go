package classifier

import "math"

type sparseRow struct {
	idx []int
	val []float64
}

func toSparse(dense []float64) sparseRow {
	var row sparseRow
	for i, v := range dense {
		if v != 0 {
			row.idx = append(row.idx, i)
			row.val = append(row.val, v)
		}
	}
	return row
}

// objective is the L2-penalized softmax cross-entropy over the corpus.
// Parameters are laid out per class as d weights followed by one bias;
// biases are not penalized.
type objective struct {
	xs []sparseRow
	ys []int
	k  int
	d  int
	c  float64
}

// eval returns the loss at theta and, when grad is non-nil, overwrites grad
// with the gradient.
func (o *objective) eval(theta, grad []float64) float64 {
	stride := o.d + 1
	if grad != nil {
		for i := range grad {
			grad[i] = 0
		}
	}

	var loss float64
	scores := make([]float64, o.k)
	for n, x := range o.xs {
		for k := 0; k < o.k; k++ {
			base := k * stride
			s := theta[base+o.d]
			for i, j := range x.idx {
				s += theta[base+j] * x.val[i]
			}
			scores[k] = s
		}
		lse := logSumExp(scores)
		loss += lse - scores[o.ys[n]]

		if grad == nil {
			continue
		}
		for k := 0; k < o.k; k++ {
			p := math.Exp(scores[k] - lse)
			if k == o.ys[n] {
				p--
			}
			base := k * stride
			grad[base+o.d] += p
			for i, j := range x.idx {
				grad[base+j] += p * x.val[i]
			}
		}
	}

	inv := 1 / o.c
	for k := 0; k < o.k; k++ {
		base := k * stride
		for j := 0; j < o.d; j++ {
			w := theta[base+j]
			loss += 0.5 * inv * w * w
			if grad != nil {
				grad[base+j] += inv * w
			}
		}
	}
	return loss
}
