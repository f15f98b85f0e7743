package reveler

import (
	"fmt"
	"sync"

	"github.com/sp301415/bluecommit/bluehash"
	"github.com/sp301415/bluecommit/conv"
	"github.com/sp301415/bluecommit/num"
)

// HashPoint returns the digest of the canonical encoding of point.
func HashPoint(params Parameters, point Vector) []byte {
	return bluehash.Sum(params.digestSize, EncodePoint(point))
}

// Committer computes commitments.
// A Committer is not safe for concurrent use; see ShallowCopy.
type Committer struct {
	Parameters Parameters

	convolver conv.Convolver

	buffer rowBuffer
}

type rowBuffer struct {
	ca  []uint64
	cb  []uint64
	row []uint64
}

func newRowBuffer(N int) rowBuffer {
	return rowBuffer{
		ca:  make([]uint64, N),
		cb:  make([]uint64, N),
		row: make([]uint64, N),
	}
}

// NewCommitter creates a new Committer.
func NewCommitter(params Parameters) *Committer {
	return &Committer{
		Parameters: params,

		convolver: params.NewConvolver(),

		buffer: newRowBuffer(params.degree),
	}
}

// ShallowCopy creates a copy of Committer that is thread-safe.
func (c *Committer) ShallowCopy() *Committer {
	return &Committer{
		Parameters: c.Parameters,

		convolver: c.convolver.ShallowCopy(),

		buffer: newRowBuffer(c.Parameters.degree),
	}
}

// Commit computes the commitment to (m, r) under (A, B).
// Inputs are not modified.
func (c *Committer) Commit(A, B Matrix, m, r Vector) (Commitment, error) {
	if err := c.checkInputs(A, B, m, r); err != nil {
		return Commitment{}, err
	}

	point := make(Vector, c.Parameters.degree)
	for i := 0; i < c.Parameters.degree; i++ {
		if err := c.rowAssign(A[i], B[i], m, r, c.buffer.row); err != nil {
			return Commitment{}, err
		}
		c.accumulate(c.buffer.row, point)
	}

	return Commitment{
		Point:  point,
		Digest: HashPoint(c.Parameters, point),
	}, nil
}

// CommitParallel is like Commit, but spreads the rows over workers goroutines.
// The result is identical to Commit for every workers.
func (c *Committer) CommitParallel(A, B Matrix, m, r Vector, workers int) (Commitment, error) {
	if err := c.checkInputs(A, B, m, r); err != nil {
		return Commitment{}, err
	}

	N := c.Parameters.degree
	workers = min(max(workers, 1), N)

	committerPool := make([]*Committer, workers)
	for i := 0; i < workers; i++ {
		committerPool[i] = c.ShallowCopy()
	}

	rowJobChan := make(chan int)
	go func() {
		defer close(rowJobChan)
		for i := 0; i < N; i++ {
			rowJobChan <- i
		}
	}()

	rows := NewMatrix(N)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(idx int) {
			defer wg.Done()

			committer := committerPool[idx]
			for j := range rowJobChan {
				if errs[idx] != nil {
					continue
				}
				errs[idx] = committer.rowAssign(A[j], B[j], m, r, rows[j])
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return Commitment{}, err
		}
	}

	// Rows are summed in index order, independent of completion order.
	point := make(Vector, N)
	for i := 0; i < N; i++ {
		c.accumulate(rows[i], point)
	}

	return Commitment{
		Point:  point,
		Digest: HashPoint(c.Parameters, point),
	}, nil
}

// rowAssign writes A_i * m + B_i * r mod Q to rowOut.
func (c *Committer) rowAssign(a, b, m, r, rowOut []uint64) error {
	if err := c.convolver.ConvolveAssign(a, m, c.buffer.ca); err != nil {
		return err
	}
	if err := c.convolver.ConvolveAssign(b, r, c.buffer.cb); err != nil {
		return err
	}

	for k := range rowOut {
		rowOut[k] = num.AddMod(c.buffer.ca[k], c.buffer.cb[k], c.Parameters.modulus)
	}
	return nil
}

// accumulate adds row to point mod Q.
func (c *Committer) accumulate(row, point []uint64) {
	for k := range point {
		point[k] = num.AddMod(point[k], row[k], c.Parameters.modulus)
	}
}

func (c *Committer) checkInputs(A, B Matrix, m, r Vector) error {
	if err := checkMatrix(c.Parameters, "A", A); err != nil {
		return err
	}
	if err := checkMatrix(c.Parameters, "B", B); err != nil {
		return err
	}
	if err := checkVector(c.Parameters, "m", m); err != nil {
		return err
	}
	return checkVector(c.Parameters, "r", r)
}

func checkMatrix(params Parameters, name string, mat Matrix) error {
	if len(mat) != params.degree {
		return fmt.Errorf("%w: %s has %d rows, want %d", ErrConfiguration, name, len(mat), params.degree)
	}
	for i := range mat {
		if err := checkVector(params, fmt.Sprintf("%s[%d]", name, i), mat[i]); err != nil {
			return err
		}
	}
	return nil
}

func checkVector(params Parameters, name string, v []uint64) error {
	if len(v) != params.degree {
		return fmt.Errorf("%w: %s has length %d, want %d", ErrConfiguration, name, len(v), params.degree)
	}
	for i, x := range v {
		if x >= params.modulus {
			return fmt.Errorf("%w: %s[%d] = %d is not below %d", ErrConfiguration, name, i, x, params.modulus)
		}
	}
	return nil
}
