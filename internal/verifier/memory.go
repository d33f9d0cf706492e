package verifier

import "context"

// StubVerifier answers from a fixed id set. Used in tests and local runs
// without the catalog services.
type StubVerifier struct {
	ids map[int]struct{}
}

func NewStubVerifier(ids ...int) *StubVerifier {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &StubVerifier{ids: set}
}

func (v *StubVerifier) Exists(_ context.Context, id int) (bool, error) {
	_, ok := v.ids[id]
	return ok, nil
}
