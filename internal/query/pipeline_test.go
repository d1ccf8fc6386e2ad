package query_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lMelkorl/b2bminiui/internal/query"
)

type item struct {
	ID       string
	Name     string
	Note     string
	Category string
	Price    float64
	Weight   string
	At       time.Time
}

func ids(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

var itemEngine = query.NewEngine(map[string]query.Comparator[item]{
	"price": query.ByFloat(func(i item) float64 { return i.Price }),
	"at":    query.ByTime(func(i item) time.Time { return i.At }),
})

type criteria struct {
	search   string
	category string
	minPrice string
	maxPrice string
	minW     string
	maxW     string
}

func predicate(t *testing.T, k criteria) query.Predicate[item] {
	t.Helper()
	p, err := query.NewComposer[item]().
		Text("search", query.NewText(k.search),
			func(i item) string { return i.Name },
			func(i item) string { return i.Note }).
		Enum("category", query.NewEnum(k.category, []string{"Kolye", "Yüzük", "Küpe"}),
			func(i item) string { return i.Category }).
		Range("price", query.ParseRange(k.minPrice, k.maxPrice),
			func(i item) float64 { return i.Price }).
		Magnitude("weight", query.ParseRange(k.minW, k.maxW),
			func(i item) string { return i.Weight }).
		Build()
	require.NoError(t, err)
	return p
}

func sample() []item {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return []item{
		{ID: "1", Name: "Altın Kolye", Note: "inci detay", Category: "Kolye", Price: 1000, Weight: "5.2g", At: base},
		{ID: "2", Name: "Gümüş Yüzük", Note: "925 ayar", Category: "Yüzük", Price: 2000, Weight: "3.0g", At: base.Add(48 * time.Hour)},
		{ID: "3", Name: "Pırlanta Küpe", Note: "", Category: "Küpe", Price: 1000, Weight: "g", At: base.Add(24 * time.Hour)},
		{ID: "4", Name: "İnce Kolye", Note: "zincir", Category: "Kolye", Price: 500, Weight: "2.1 gr", At: base.Add(72 * time.Hour)},
		{ID: "5", Name: "Taşlı Yüzük", Note: "zirkon", Category: "Yüzük", Price: 1000, Weight: "4g", At: base.Add(96 * time.Hour)},
	}
}

func TestStatusFilterKeepsOrder(t *testing.T) {
	t.Parallel()

	type order struct {
		ID     string
		Status string
	}
	orders := []order{{"o1", "Beklemede"}, {"o2", "Kargoda"}, {"o3", "Teslim Edildi"}}
	statuses := []string{"Beklemede", "Hazırlanıyor", "Kargoda", "Teslim Edildi", "İptal Edildi"}

	p, err := query.NewComposer[order]().
		Enum("status", query.NewEnum("Kargoda", statuses), func(o order) string { return o.Status }).
		Build()
	require.NoError(t, err)

	got, err := query.NewEngine[order](nil).Run(orders, query.Request[order]{Where: p})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "o2", got[0].ID)
}

func TestWeightAndPriceTogether(t *testing.T) {
	t.Parallel()

	products := []item{
		{ID: "a", Weight: "5.2g", Price: 1000},
		{ID: "b", Weight: "3.0g", Price: 2000},
	}
	p := predicate(t, criteria{minW: "4", maxPrice: "1500"})

	got, err := itemEngine.Run(products, query.Request[item]{Where: p})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(got))
}

func TestRecentOrdersFirst(t *testing.T) {
	t.Parallel()

	records := sample()
	limit := 3
	got, err := itemEngine.Run(records, query.Request[item]{
		Sort:  &query.SortSpec{Field: "at", Direction: query.Desc},
		Limit: &limit,
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"5", "4", "2"}, ids(got))
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].At.After(got[i].At))
	}
}

func TestSentinelEqualsNoConstraint(t *testing.T) {
	t.Parallel()

	records := sample()
	withSentinel := query.Filter(records, predicate(t, criteria{category: "Tümü", maxPrice: "1000"}))
	without := query.Filter(records, predicate(t, criteria{maxPrice: "1000"}))
	if diff := cmp.Diff(without, withSentinel); diff != "" {
		t.Fatalf("sentinel changed result (-want +got):\n%s", diff)
	}
}

func TestFilterProperties(t *testing.T) {
	t.Parallel()

	records := sample()
	all := []criteria{
		{},
		{search: "kolye"},
		{category: "Yüzük"},
		{category: "Bilinmeyen"},
		{minPrice: "900", maxPrice: "1000"},
		{minPrice: "2000", maxPrice: "100"},
		{minW: "3", maxW: "6"},
		{search: "z", category: "Yüzük", minPrice: "x"},
	}

	for _, k := range all {
		p := predicate(t, k)
		once := query.Filter(records, p)

		t.Run("subset", func(t *testing.T) {
			in := map[string]bool{}
			for _, r := range records {
				in[r.ID] = true
			}
			for _, r := range once {
				assert.True(t, in[r.ID])
			}
		})

		t.Run("idempotent", func(t *testing.T) {
			if diff := cmp.Diff(once, query.Filter(once, p)); diff != "" {
				t.Fatalf("second pass differs (-want +got):\n%s", diff)
			}
		})

		t.Run("order preserving", func(t *testing.T) {
			pos := map[string]int{}
			for i, r := range records {
				pos[r.ID] = i
			}
			for i := 1; i < len(once); i++ {
				assert.Less(t, pos[once[i-1].ID], pos[once[i].ID])
			}
		})
	}
}

func TestNoActiveConstraintsIsIdentity(t *testing.T) {
	t.Parallel()

	records := sample()
	p := predicate(t, criteria{search: "  ", category: "all", minPrice: "abc", maxW: ""})
	got := query.Filter(records, p)
	if diff := cmp.Diff(records, got); diff != "" {
		t.Fatalf("identity violated (-want +got):\n%s", diff)
	}
}

func TestUnknownCategoryMatchesNothing(t *testing.T) {
	t.Parallel()

	got := query.Filter(sample(), predicate(t, criteria{category: "Broş"}))
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestMalformedBoundIsIgnored(t *testing.T) {
	t.Parallel()

	got := query.Filter(sample(), predicate(t, criteria{minPrice: "abc", maxPrice: "1000"}))
	assert.Equal(t, []string{"1", "3", "4", "5"}, ids(got))
}

func TestWeightWithoutDigitsExcludedWhenBounded(t *testing.T) {
	t.Parallel()

	records := sample()
	got := query.Filter(records, predicate(t, criteria{maxW: "100"}))
	assert.NotContains(t, ids(got), "3")
	assert.Len(t, got, 4)

	got = query.Filter(records, predicate(t, criteria{minW: "5", maxW: "6"}))
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestRangeMonotonicity(t *testing.T) {
	t.Parallel()

	records := sample()
	narrow := query.Filter(records, predicate(t, criteria{minPrice: "900", maxPrice: "1100"}))
	wide := query.Filter(records, predicate(t, criteria{minPrice: "400", maxPrice: "2500"}))
	wider := query.Filter(records, predicate(t, criteria{maxPrice: "2500"}))

	assert.LessOrEqual(t, len(narrow), len(wide))
	assert.LessOrEqual(t, len(wide), len(wider))
	for _, id := range ids(narrow) {
		assert.Contains(t, ids(wide), id)
	}
}

func TestSortIsStable(t *testing.T) {
	t.Parallel()

	records := sample()

	asc := query.Sorted(records, query.ByFloat(func(i item) float64 { return i.Price }), query.Asc)
	assert.Equal(t, []string{"4", "1", "3", "5", "2"}, ids(asc))

	desc := query.Sorted(records, query.ByFloat(func(i item) float64 { return i.Price }), query.Desc)
	assert.Equal(t, []string{"2", "1", "3", "5", "4"}, ids(desc))

	// input untouched
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(records))
}

func TestSortByInstantIgnoresZone(t *testing.T) {
	t.Parallel()

	utc := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	// 12:30 at +03:00 is 09:30 UTC, earlier than utc
	local := time.Date(2024, 5, 1, 12, 30, 0, 0, time.FixedZone("TRT", 3*3600))
	got := query.Sorted([]item{{ID: "utc", At: utc}, {ID: "local", At: local}},
		query.ByTime(func(i item) time.Time { return i.At }), query.Asc)
	assert.Equal(t, []string{"local", "utc"}, ids(got))
}

func TestLimit(t *testing.T) {
	t.Parallel()

	records := sample()
	for _, n := range []int{0, 1, 3, 5, 9} {
		limit := n
		got, err := itemEngine.Run(records, query.Request[item]{Limit: &limit})
		require.NoError(t, err)
		assert.Len(t, got, min(n, len(records)))
	}

	negative := -2
	got, err := itemEngine.Run(records, query.Request[item]{Limit: &negative})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = itemEngine.Run(records, query.Request[item]{})
	require.NoError(t, err)
	assert.Len(t, got, len(records))
}

func TestRunReturnsFreshSlice(t *testing.T) {
	t.Parallel()

	records := sample()
	got, err := itemEngine.Run(records, query.Request[item]{
		Sort: &query.SortSpec{Field: "price", Direction: query.Desc},
	})
	require.NoError(t, err)
	require.Len(t, got, len(records))

	got[0].Name = "mutated"
	assert.NotEqual(t, "mutated", records[1].Name)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(records))
}

func TestRunRejectsUnsupportedSortBeforeFiltering(t *testing.T) {
	t.Parallel()

	calls := 0
	where := func(item) bool {
		calls++
		return true
	}

	_, err := itemEngine.Run(sample(), query.Request[item]{
		Where: where,
		Sort:  &query.SortSpec{Field: "name", Direction: query.Asc},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, query.ErrUnsupportedSortField))
	assert.Zero(t, calls)

	_, err = itemEngine.Run(sample(), query.Request[item]{
		Where: where,
		Sort:  &query.SortSpec{Field: "price", Direction: "sideways"},
	})
	assert.ErrorIs(t, err, query.ErrUnsupportedDirection)
	assert.Zero(t, calls)
}

func TestComposerMissingField(t *testing.T) {
	t.Parallel()

	_, err := query.NewComposer[item]().
		Range("price", query.ParseRange("1", ""), nil).
		Build()
	assert.ErrorIs(t, err, query.ErrMissingField)

	// inactive constraints never need an accessor
	p, err := query.NewComposer[item]().
		Range("price", query.ParseRange("", ""), nil).
		Text("search", query.NewText("")).
		Build()
	require.NoError(t, err)
	assert.True(t, p(item{}))
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	d, err := query.ParseDirection("", query.Desc)
	require.NoError(t, err)
	assert.Equal(t, query.Desc, d)

	d, err = query.ParseDirection(" ASC ", query.Desc)
	require.NoError(t, err)
	assert.Equal(t, query.Asc, d)

	_, err = query.ParseDirection("up", query.Asc)
	assert.ErrorIs(t, err, query.ErrUnsupportedDirection)
}

func TestSortKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"at", "price"}, itemEngine.SortKeys())
}

func TestParseLimit(t *testing.T) {
	n, err := query.ParseLimit("")
	require.NoError(t, err)
	assert.Nil(t, n)

	n, err = query.ParseLimit(" 3 ")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 3, *n)

	n, err = query.ParseLimit("-1")
	require.NoError(t, err)
	assert.Equal(t, -1, *n)

	_, err = query.ParseLimit("ten")
	assert.ErrorIs(t, err, query.ErrInvalidLimit)
	_, err = query.ParseLimit("2.5")
	assert.ErrorIs(t, err, query.ErrInvalidLimit)
}
