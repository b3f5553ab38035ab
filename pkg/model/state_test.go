package model

import "testing"

func TestQueryState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from  QueryState
		to    QueryState
		valid bool
	}{
		{QueryStateIdle, QueryStateLoading, true},
		{QueryStateLoading, QueryStateSuccess, true},
		{QueryStateLoading, QueryStateError, true},
		{QueryStateSuccess, QueryStateRefreshing, true},
		{QueryStateRefreshing, QueryStateSuccess, true},
		{QueryStateRefreshing, QueryStateError, true},
		{QueryStateError, QueryStateLoading, true},

		{QueryStateIdle, QueryStateSuccess, false},
		{QueryStateSuccess, QueryStateLoading, false},
		{QueryStateError, QueryStateRefreshing, false},
		{QueryStateLoading, QueryStateRefreshing, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.valid {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}

func TestQueryState_IsFetching(t *testing.T) {
	for _, s := range []QueryState{QueryStateLoading, QueryStateRefreshing} {
		if !s.IsFetching() {
			t.Errorf("%s.IsFetching() = false", s)
		}
	}
	for _, s := range []QueryState{QueryStateIdle, QueryStateSuccess, QueryStateError} {
		if s.IsFetching() {
			t.Errorf("%s.IsFetching() = true", s)
		}
	}
}
