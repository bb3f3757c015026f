// Package kuzutest opens throwaway embedded databases for tests.
package kuzutest

import (
	"path/filepath"
	"testing"

	"github.com/yungbote/docgraph-backend/internal/platform/kuzudb"
	"github.com/yungbote/docgraph-backend/internal/platform/logger"
)

// Client returns a client backed by a fresh database under t.TempDir.
// Tests are skipped when the embedded engine cannot be opened on this
// machine.
func Client(t *testing.T) *kuzudb.Client {
	t.Helper()
	client, err := kuzudb.New(filepath.Join(t.TempDir(), "test.kuzu"), logger.NewNop())
	if err != nil {
		t.Skipf("embedded kuzu unavailable: %v", err)
	}
	t.Cleanup(client.Close)
	return client
}
