package memory

import (
	"testing"

	"github.com/plinko-labs/token-burner/pkg/burner/ledger/tests"
)

func TestLedgerMemoryStore(t *testing.T) {
	testStore := New()
	teardown := func() {
		testStore.(*store).reset()
	}

	tests.RunTests(t, testStore, teardown)
}
