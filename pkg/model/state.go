package model

// QueryState is the lifecycle state of a cached query for one key.
type QueryState string

const (
	QueryStateIdle       QueryState = "idle"
	QueryStateLoading    QueryState = "loading"
	QueryStateSuccess    QueryState = "success"
	QueryStateError      QueryState = "error"
	QueryStateRefreshing QueryState = "refreshing"
)

// String returns the string representation of the query state.
func (s QueryState) String() string {
	return string(s)
}

// IsFetching returns true while a request for the key is in flight.
func (s QueryState) IsFetching() bool {
	return s == QueryStateLoading || s == QueryStateRefreshing
}

// ValidQueryTransitions defines the allowed state transitions for queries.
// error -> loading is the manual retry path.
var ValidQueryTransitions = map[QueryState][]QueryState{
	QueryStateIdle:       {QueryStateLoading},
	QueryStateLoading:    {QueryStateSuccess, QueryStateError},
	QueryStateSuccess:    {QueryStateRefreshing},
	QueryStateRefreshing: {QueryStateSuccess, QueryStateError},
	QueryStateError:      {QueryStateLoading},
}

// CanTransitionTo returns true if moving from the current state to next is valid.
func (s QueryState) CanTransitionTo(next QueryState) bool {
	for _, allowed := range ValidQueryTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
