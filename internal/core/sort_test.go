package core

import (
	"reflect"
	"testing"
)

func TestSort(t *testing.T) {
	txs := sampleTransactions()

	tests := []struct {
		name  string
		field SortField
		dir   SortDirection
		want  []string
	}{
		{
			name:  "amount ascending",
			field: SortByAmount,
			dir:   Ascending,
			want:  []string{"t3", "t4", "t1", "t5", "t2"},
		},
		{
			name:  "amount descending",
			field: SortByAmount,
			dir:   Descending,
			want:  []string{"t2", "t5", "t1", "t4", "t3"},
		},
		{
			name:  "date ascending is chronological",
			field: SortByDate,
			dir:   Ascending,
			want:  []string{"t1", "t2", "t3", "t4", "t5"},
		},
		{
			name:  "description ignores case",
			field: SortByDescription,
			dir:   Ascending,
			want:  []string{"t3", "t5", "t1", "t4", "t2"},
		},
		{
			name:  "category ascending",
			field: SortByCategory,
			dir:   Ascending,
			want:  []string{"t1", "t4", "t5", "t2", "t3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Sort(txs, tt.field, tt.dir))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sort(%s, %s) = %v, want %v", tt.field, tt.dir, got, tt.want)
			}
		})
	}
}

func TestSort_DescendingIsReverseOfAscending(t *testing.T) {
	// Distinct keys only: reversal holds exactly when there are no ties.
	txs := sampleTransactions()

	asc := ids(Sort(txs, SortByAmount, Ascending))
	desc := ids(Sort(txs, SortByAmount, Descending))

	for i := range asc {
		if asc[i] != desc[len(desc)-1-i] {
			t.Fatalf("descending is not the reverse of ascending: %v vs %v", asc, desc)
		}
	}
}

func TestSort_StableOnTies(t *testing.T) {
	txs := []Transaction{
		{ID: "a", Amount: 10, Date: "2025-01-01"},
		{ID: "b", Amount: 10, Date: "2025-01-01"},
		{ID: "c", Amount: 10, Date: "2025-01-01"},
	}

	for _, dir := range []SortDirection{Ascending, Descending} {
		got := ids(Sort(txs, SortByAmount, dir))
		want := []string{"a", "b", "c"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ties not kept in input order for %s: got %v", dir, got)
		}
	}
}

func TestSort_InvalidDatesSortFirst(t *testing.T) {
	txs := []Transaction{
		{ID: "ok", Date: "2025-05-01"},
		{ID: "bad", Date: "not-a-date"},
	}

	got := ids(Sort(txs, SortByDate, Ascending))
	want := []string{"bad", "ok"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sort() = %v, want invalid date first: %v", got, want)
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	txs := sampleTransactions()
	before := make([]Transaction, len(txs))
	copy(before, txs)

	Sort(txs, SortByAmount, Descending)

	if !reflect.DeepEqual(txs, before) {
		t.Error("Sort() mutated its input slice")
	}
}
