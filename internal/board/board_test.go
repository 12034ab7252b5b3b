package board

import (
	"testing"
	"time"

	"github.com/efhk-flights/flightboard/internal/models"
	"github.com/efhk-flights/flightboard/internal/testutil"
)

var base = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	s := New(0)
	testutil.AssertEqual(t, s.PageSize, DefaultPageSize)
	testutil.AssertTrue(t, s.Loading)
	testutil.AssertEqual(t, s.Err, "")
	testutil.AssertEqual(t, s.PageOffset, 0)
	testutil.AssertLen(t, Window(s), 0)
	testutil.AssertFalse(t, CanAdvance(s))
	testutil.AssertFalse(t, CanRetreat(s))
}

func TestApplyFetchSuccess_SortsByArrival(t *testing.T) {
	orders := [][]int{
		{0, 1, 2, 3, 4, 5, 6},
		{6, 5, 4, 3, 2, 1, 0},
		{3, 0, 6, 1, 5, 2, 4},
	}
	ordered := testutil.Flights(7, base, 30*time.Minute)

	for _, order := range orders {
		input := make([]models.Flight, 0, len(order))
		for _, i := range order {
			input = append(input, ordered[i])
		}

		s := ApplyFetchSuccess(New(DefaultPageSize), 1, input, base)

		testutil.AssertLen(t, s.Flights, len(ordered))
		for i := 1; i < len(s.Flights); i++ {
			if s.Flights[i].Arrival.Before(*s.Flights[i-1].Arrival) {
				t.Errorf("order %v: flight %d arrives before flight %d", order, i, i-1)
			}
		}
	}
}

func TestApplyFetchSuccess_DoesNotMutateInput(t *testing.T) {
	input := []models.Flight{
		testutil.Flight("AY 2", base.Add(time.Hour), models.StatusUnknown),
		testutil.Flight("AY 1", base, models.StatusUnknown),
	}

	_ = ApplyFetchSuccess(New(DefaultPageSize), 1, input, base)

	testutil.AssertEqual(t, input[0].Number, "AY 2")
	testutil.AssertEqual(t, input[1].Number, "AY 1")
}

func TestApplyFetchSuccess_UnparseableSortLast(t *testing.T) {
	input := []models.Flight{
		testutil.UnparseableFlight("X1"),
		testutil.Flight("AY 2", base.Add(time.Hour), models.StatusUnknown),
		testutil.UnparseableFlight("X2"),
		testutil.Flight("AY 1", base, models.StatusUnknown),
	}

	s := ApplyFetchSuccess(New(DefaultPageSize), 1, input, base)

	testutil.AssertFlightNumbers(t, s.Flights, "AY 1", "AY 2", "X1", "X2")
}

func TestApplyFetchSuccess_CentersOnNow(t *testing.T) {
	// 09:00, 10:00, 11:00 with now at 10:30: the first arrival at or after
	// now is index 2, so the offset is max(2-2, 0) = 0.
	flights := []models.Flight{
		testutil.Flight("T1", base, models.StatusLanded),
		testutil.Flight("T2", base.Add(time.Hour), models.StatusLanded),
		testutil.Flight("T3", base.Add(2*time.Hour), models.StatusUnknown),
	}
	now := base.Add(90 * time.Minute)

	testutil.AssertEqual(t, ClosestIndex(flights, now), 2)

	s := ApplyFetchSuccess(New(DefaultPageSize), 1, flights, now)
	testutil.AssertEqual(t, s.PageOffset, 0)
	testutil.AssertFalse(t, s.Loading)
}

func TestApplyFetchSuccess_InitialOffset(t *testing.T) {
	flights := testutil.Flights(20, base, 10*time.Minute)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"before every flight", base.Add(-time.Hour), 0},
		{"exactly at first flight", base, 0},
		{"middle of the list", base.Add(95 * time.Minute), 8},
		{"exactly at a flight", base.Add(100 * time.Minute), 8},
		{"at last flight", base.Add(190 * time.Minute), 17},
		{"all flights in the past", base.Add(24 * time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ApplyFetchSuccess(New(DefaultPageSize), 1, flights, tt.now)
			testutil.AssertEqual(t, s.PageOffset, tt.want)
		})
	}
}

func TestApplyFetchSuccess_UnparseableNeverClosest(t *testing.T) {
	flights := []models.Flight{
		testutil.Flight("AY 1", base, models.StatusUnknown),
		testutil.UnparseableFlight("X1"),
	}
	testutil.AssertEqual(t, ClosestIndex(flights, base.Add(time.Hour)), -1)
}

func TestApplyFetchSuccess_KeepsError(t *testing.T) {
	flights := testutil.Flights(3, base, time.Hour)

	s := ApplyFetchSuccess(New(DefaultPageSize), 1, flights, base)
	s = ApplyFetchFailure(s, 2)
	testutil.AssertTrue(t, HasError(s))

	s = ApplyFetchSuccess(s, 3, testutil.Flights(7, base, time.Hour), base)
	testutil.AssertEqual(t, s.Err, FetchErrorMessage)
	testutil.AssertFalse(t, s.Loading)
	testutil.AssertLen(t, s.Flights, 7)
	testutil.AssertLen(t, Window(s), DefaultPageSize)
}

func TestApplyFetchFailure_KeepsPreviousFlights(t *testing.T) {
	flights := testutil.Flights(12, base, 10*time.Minute)
	s := ApplyFetchSuccess(New(DefaultPageSize), 1, flights, base.Add(time.Hour))
	s = Advance(s)
	before := s

	s = ApplyFetchFailure(s, 2)

	testutil.AssertEqual(t, s.Err, FetchErrorMessage)
	testutil.AssertFalse(t, s.Loading)
	testutil.AssertLen(t, s.Flights, len(before.Flights))
	testutil.AssertEqual(t, s.PageOffset, before.PageOffset)
	testutil.AssertLen(t, Window(s), len(Window(before)))
}

func TestApplyFetchFailure_OnEmptyBoard(t *testing.T) {
	s := ApplyFetchFailure(New(DefaultPageSize), 1)
	testutil.AssertEqual(t, s.Err, "Unable to fetch flights...")
	testutil.AssertFalse(t, s.Loading)
	testutil.AssertLen(t, s.Flights, 0)
}

func TestApply_IgnoresOlderTokens(t *testing.T) {
	fresh := testutil.Flights(3, base, time.Hour)
	stale := testutil.Flights(8, base, time.Hour)

	s := ApplyFetchSuccess(New(DefaultPageSize), 5, fresh, base)
	s = ApplyFetchSuccess(s, 4, stale, base)
	testutil.AssertLen(t, s.Flights, 3)

	s = ApplyFetchFailure(s, 3)
	testutil.AssertFalse(t, HasError(s))

	// same token is allowed, so a retry of the latest request still lands
	s = ApplyFetchSuccess(s, 5, stale, base)
	testutil.AssertLen(t, s.Flights, 8)
}

func TestAdvanceRetreat(t *testing.T) {
	s := ApplyFetchSuccess(New(DefaultPageSize), 1, testutil.Flights(12, base, time.Minute), base)
	testutil.AssertEqual(t, s.PageOffset, 0)
	testutil.AssertFalse(t, CanRetreat(s))
	testutil.AssertTrue(t, CanAdvance(s))

	s = Advance(s)
	testutil.AssertEqual(t, s.PageOffset, 5)
	s = Advance(s)
	testutil.AssertEqual(t, s.PageOffset, 10)
	testutil.AssertLen(t, Window(s), 2)
	testutil.AssertFalse(t, CanAdvance(s))

	// no-op past the end
	s = Advance(s)
	testutil.AssertEqual(t, s.PageOffset, 10)

	s = Retreat(s)
	testutil.AssertEqual(t, s.PageOffset, 5)
	s = Retreat(s)
	testutil.AssertEqual(t, s.PageOffset, 0)

	// no-op at the start
	s = Retreat(s)
	testutil.AssertEqual(t, s.PageOffset, 0)
}

func TestRetreat_ClampsToZero(t *testing.T) {
	// offset 3 comes from centring, not from paging
	flights := testutil.Flights(10, base, 10*time.Minute)
	s := ApplyFetchSuccess(New(DefaultPageSize), 1, flights, base.Add(50*time.Minute))
	testutil.AssertEqual(t, s.PageOffset, 3)

	s = Retreat(s)
	testutil.AssertEqual(t, s.PageOffset, 0)
}

func TestAdvance_ExactMultiple(t *testing.T) {
	s := ApplyFetchSuccess(New(DefaultPageSize), 1, testutil.Flights(10, base, time.Minute), base)
	s = Advance(s)
	testutil.AssertEqual(t, s.PageOffset, 5)
	testutil.AssertFalse(t, CanAdvance(s))
	testutil.AssertLen(t, Window(s), 5)
}

func TestWindowLength_AllReachableOffsets(t *testing.T) {
	for n := 0; n <= 17; n++ {
		for minutes := -30; minutes <= n*10+30; minutes += 7 {
			now := base.Add(time.Duration(minutes) * time.Minute)
			s := ApplyFetchSuccess(New(DefaultPageSize), 1, testutil.Flights(n, base, 10*time.Minute), now)

			// walk forward to the end and back to the start
			for step := 0; step < 2*n+4; step++ {
				checkWindow(t, s, n)
				if step < n+2 {
					s = Advance(s)
				} else {
					s = Retreat(s)
				}
			}
		}
	}
}

func checkWindow(t *testing.T, s State, n int) {
	t.Helper()
	want := min(s.PageSize, n-s.PageOffset)
	if want < 0 {
		want = 0
	}
	got := len(Window(s))
	if got != want {
		t.Fatalf("n=%d offset=%d: window length %d, want %d", n, s.PageOffset, got, want)
	}
	if s.PageOffset < 0 || (n > 0 && s.PageOffset >= n) {
		t.Fatalf("n=%d: offset %d out of range", n, s.PageOffset)
	}
}

func TestWindow_ReturnsCopy(t *testing.T) {
	s := ApplyFetchSuccess(New(DefaultPageSize), 1, testutil.Flights(3, base, time.Minute), base)
	w := Window(s)
	w[0].Number = "changed"
	testutil.AssertTrue(t, s.Flights[0].Number != "changed")
}

func TestTransitions_LeaveInputUntouched(t *testing.T) {
	s := ApplyFetchSuccess(New(DefaultPageSize), 1, testutil.Flights(12, base, time.Minute), base)
	_ = Advance(s)
	testutil.AssertEqual(t, s.PageOffset, 0)

	_ = ApplyFetchFailure(s, 2)
	testutil.AssertEqual(t, s.Err, "")
}
