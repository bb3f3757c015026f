package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/docgraph-backend/internal/platform/kuzudb"
)

func TestOneHot(t *testing.T) {
	for _, i := range []int{0, 1, 383, 384, 1000} {
		v := OneHot(i)
		if len(v) != EmbeddingDim {
			t.Fatalf("OneHot(%d): length %d, want %d", i, len(v), EmbeddingDim)
		}
		hot := i % EmbeddingDim
		for j, x := range v {
			if j == hot && x != 1.0 {
				t.Fatalf("OneHot(%d): position %d = %v, want 1.0", i, j, x)
			}
			if j != hot && x != 0.0 {
				t.Fatalf("OneHot(%d): position %d = %v, want 0.0", i, j, x)
			}
		}
	}
}

// A wrong-length vector must fail validation before any engine call; the
// zero client would panic if one were attempted.
func TestSemanticSearchRejectsBadDimension(t *testing.T) {
	client := &kuzudb.Client{}
	for _, n := range []int{0, 1, EmbeddingDim - 1, EmbeddingDim + 1} {
		_, err := SemanticSearch(context.Background(), client, make([]float32, n), 5, 200, "")
		if !errors.Is(err, ErrVectorDimension) {
			t.Fatalf("SemanticSearch with %d components: expected ErrVectorDimension, got %v", n, err)
		}
	}
}
