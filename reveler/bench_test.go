package reveler_test

import (
	"runtime"
	"testing"

	"github.com/sp301415/bluecommit/reveler"
)

func BenchmarkCommit(b *testing.B) {
	params := reveler.ParamsN256Q65535.MustCompile()
	A, B, m, r := fixture(params, "bench")
	committer := reveler.NewCommitter(params)

	b.Run("Commit", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			committer.Commit(A, B, m, r)
		}
	})

	b.Run("CommitParallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			committer.CommitParallel(A, B, m, r, runtime.NumCPU())
		}
	})

	com, _ := committer.Commit(A, B, m, r)
	verifier := reveler.NewVerifier(params)
	b.Run("Verify", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			verifier.Verify(com)
		}
	})
}
