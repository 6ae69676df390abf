package cryptonight

import (
	"runtime"
	"sync"
)

var statePool sync.Pool

func init() {
	statePool.New = func() any {
		cn, err := NewState(StandardParameters)
		if err != nil {
			panic(err)
		}
		// reclaim the scratchpad when the pool drops the State
		runtime.SetFinalizer(cn, (*State).Close)
		return cn
	}
}

// GetState a pooled State with StandardParameters
func GetState() *State {
	return statePool.Get().(*State)
}

// PutState returns a State obtained from GetState to the pool
func PutState(cn *State) {
	if cn.params != StandardParameters {
		cn.Close()
		return
	}
	if cn.scratchpad == nil {
		return
	}
	statePool.Put(cn)
}
