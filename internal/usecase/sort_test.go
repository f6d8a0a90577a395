package usecase

import (
	"math"
	"testing"
	"time"

	"adsdash/internal/domain"
)

func TestSortRecordsNumericAscendingAndDescending(t *testing.T) {
	t.Parallel()

	records := []domain.Record{
		{Campaign: "mid", Spent: 50},
		{Campaign: "high", Spent: 100},
		{Campaign: "low", Spent: 10},
	}

	asc := SortRecords(records, domain.SortSpec{Key: "spent", Direction: domain.Ascending})
	if asc[0].Campaign != "low" || asc[1].Campaign != "mid" || asc[2].Campaign != "high" {
		t.Fatalf("ascending order wrong: %v", asc)
	}

	desc := SortRecords(records, domain.SortSpec{Key: "spent", Direction: domain.Descending})
	if desc[0].Campaign != "high" || desc[1].Campaign != "mid" || desc[2].Campaign != "low" {
		t.Fatalf("descending order wrong: %v", desc)
	}

	// Input is never mutated.
	if records[0].Campaign != "mid" {
		t.Fatalf("input slice was reordered")
	}
}

func TestSortRecordsNaNCostMetricSortsAsZero(t *testing.T) {
	t.Parallel()

	records := []domain.Record{
		{Campaign: "defined", CostMetric: domain.Metric(5)},
		{Campaign: "undefined", CostMetric: domain.Metric(math.NaN())},
		{Campaign: "negativeless", CostMetric: domain.Metric(2)},
	}

	asc := SortRecords(records, domain.SortSpec{Key: "cost_metric", Direction: domain.Ascending})
	if asc[0].Campaign != "undefined" {
		t.Fatalf("NaN should coerce to 0 and sort first ascending, got %q", asc[0].Campaign)
	}
	if asc[1].Campaign != "negativeless" || asc[2].Campaign != "defined" {
		t.Fatalf("unexpected order: %v", asc)
	}
}

func TestSortRecordsByStringKey(t *testing.T) {
	t.Parallel()

	records := []domain.Record{
		{Campaign: "banana"},
		{Campaign: "apple"},
		{Campaign: "cherry"},
	}

	sorted := SortRecords(records, domain.SortSpec{Key: "campaign", Direction: domain.Ascending})
	if sorted[0].Campaign != "apple" || sorted[1].Campaign != "banana" || sorted[2].Campaign != "cherry" {
		t.Fatalf("unexpected order: %v", sorted)
	}
}

func TestSortRecordsByDate(t *testing.T) {
	t.Parallel()

	records := []domain.Record{
		{Campaign: "newest", Date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		{Campaign: "oldest", Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{Campaign: "middle", Date: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)},
	}

	desc := SortRecords(records, domain.SortSpec{Key: "date", Direction: domain.Descending})
	if desc[0].Campaign != "newest" || desc[2].Campaign != "oldest" {
		t.Fatalf("unexpected order: %v", desc)
	}
}

func TestSortRecordsWithoutKeyIsPassThrough(t *testing.T) {
	t.Parallel()

	records := []domain.Record{
		{Campaign: "c"},
		{Campaign: "a"},
		{Campaign: "b"},
	}

	got := SortRecords(records, domain.SortSpec{})
	for i := range records {
		if got[i].Campaign != records[i].Campaign {
			t.Fatalf("pass-through changed order at %d", i)
		}
	}
}

func TestSortRecordsStableOnTies(t *testing.T) {
	t.Parallel()

	records := []domain.Record{
		{Campaign: "first", Clicks: 5},
		{Campaign: "second", Clicks: 5},
		{Campaign: "third", Clicks: 5},
	}

	sorted := SortRecords(records, domain.SortSpec{Key: "clicks", Direction: domain.Ascending})
	if sorted[0].Campaign != "first" || sorted[1].Campaign != "second" || sorted[2].Campaign != "third" {
		t.Fatalf("ties lost input order: %v", sorted)
	}
}

func TestSortGroups(t *testing.T) {
	t.Parallel()

	groups := []domain.CampaignGroup{
		{Campaign: "b", TotalSpent: 10},
		{Campaign: "a", TotalSpent: 30},
		{Campaign: "c", TotalSpent: 20},
	}

	bySpent := SortGroups(groups, domain.SortSpec{Key: "total_spent", Direction: domain.Descending})
	if bySpent[0].Campaign != "a" || bySpent[1].Campaign != "c" || bySpent[2].Campaign != "b" {
		t.Fatalf("unexpected order by spend: %v", bySpent)
	}

	byName := SortGroups(groups, domain.SortSpec{Key: "campaign", Direction: domain.Ascending})
	if byName[0].Campaign != "a" || byName[1].Campaign != "b" || byName[2].Campaign != "c" {
		t.Fatalf("unexpected order by name: %v", byName)
	}

	if groups[0].Campaign != "b" {
		t.Fatalf("input slice was reordered")
	}
}
