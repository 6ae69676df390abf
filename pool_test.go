package cryptonight

import (
	"testing"
)

func TestStatePool(t *testing.T) {
	state := GetState()
	if state.params != StandardParameters {
		t.Errorf("GetState() params = %+v, want %+v", state.params, StandardParameters)
	}
	if state.scratchpad == nil {
		t.Error("GetState() returned a closed State")
	}
	PutState(state)

	// non-standard States close instead of entering the pool
	small, err := NewState(Parameters{PageSize: 1 << 17, InitSize: 128, Iterations: 2})
	if err != nil {
		t.Fatal(err)
	}
	PutState(small)
	if small.scratchpad != nil {
		t.Error("PutState(...) kept a non-standard State open")
	}

	// closed States are dropped
	closed, err := NewState(StandardParameters)
	if err != nil {
		t.Fatal(err)
	}
	closed.Close()
	PutState(closed)
}
