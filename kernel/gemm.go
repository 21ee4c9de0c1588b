package kernel

import "github.com/wilhasse/cpualloc-go/api"

// Gemm computes c = a * b for row-major float32 matrices, a being
// m x k and b being k x n. b is packed transposed into heap scratch so
// the inner loop walks both operands sequentially.
func (b *Backend) Gemm(m, n, k int, a, bm, c []float32) api.ErrCode {
	if m <= 0 || n <= 0 || k <= 0 {
		return api.AL_INVALID_INPUT
	}
	if len(a) < m*k || len(bm) < k*n || len(c) < m*n {
		return api.AL_INVALID_INPUT
	}
	packed := b.scratchFloats(k * n)
	for j := 0; j < n; j++ {
		col := packed[j*k : (j+1)*k]
		for p := 0; p < k; p++ {
			col[p] = bm[p*n+j]
		}
	}
	for i := 0; i < m; i++ {
		row := a[i*k : (i+1)*k]
		out := c[i*n : (i+1)*n]
		for j := 0; j < n; j++ {
			col := packed[j*k : (j+1)*k]
			var sum float32
			for p := 0; p < k; p++ {
				sum += row[p] * col[p]
			}
			out[j] = sum
		}
	}
	b.releaseScratchFloats(packed)
	return api.AL_SUCCESS
}

// BatchGemm runs Gemm over batch independent m x k by k x n products.
// Operands are laid out batch-contiguously. The packing buffer is a
// single workspace grown through the hook table's realloc slot.
func (b *Backend) BatchGemm(batch, m, n, k int, a, bm, c []float32) api.ErrCode {
	if batch <= 0 || m <= 0 || n <= 0 || k <= 0 {
		return api.AL_INVALID_INPUT
	}
	strideA, strideB, strideC := m*k, k*n, m*n
	if len(a) < batch*strideA || len(bm) < batch*strideB || len(c) < batch*strideC {
		return api.AL_INVALID_INPUT
	}
	packed := floats(b.growWorkspace(strideB*4), strideB)
	for bi := 0; bi < batch; bi++ {
		ab := a[bi*strideA : (bi+1)*strideA]
		bb := bm[bi*strideB : (bi+1)*strideB]
		cb := c[bi*strideC : (bi+1)*strideC]
		for j := 0; j < n; j++ {
			col := packed[j*k : (j+1)*k]
			for p := 0; p < k; p++ {
				col[p] = bb[p*n+j]
			}
		}
		for i := 0; i < m; i++ {
			row := ab[i*k : (i+1)*k]
			out := cb[i*n : (i+1)*n]
			for j := 0; j < n; j++ {
				col := packed[j*k : (j+1)*k]
				var sum float32
				for p := 0; p < k; p++ {
					sum += row[p] * col[p]
				}
				out[j] = sum
			}
		}
	}
	return api.AL_SUCCESS
}

// AddBias adds a length-n bias vector to every row of the m x n matrix
// c, staging the bias in a zero-initialized calloc buffer so partial
// vectors read as zero.
func (b *Backend) AddBias(m, n int, bias, c []float32) api.ErrCode {
	if m <= 0 || n <= 0 {
		return api.AL_INVALID_INPUT
	}
	if len(c) < m*n || len(bias) > n {
		return api.AL_INVALID_INPUT
	}
	staged := floats(b.AllocZeroed(n, 4), n)
	copy(staged, bias)
	for i := 0; i < m; i++ {
		row := c[i*n : (i+1)*n]
		for j := 0; j < n; j++ {
			row[j] += staged[j]
		}
	}
	b.ReleaseWorkspace(floatBytes(staged))
	return api.AL_SUCCESS
}
