package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(CacheLookups.WithLabelValues("products", "hit"))
	CacheHit("products", true)
	require.Equal(t, before+1, testutil.ToFloat64(CacheLookups.WithLabelValues("products", "hit")))

	before = testutil.ToFloat64(QueryRejected.WithLabelValues("orders", "sort"))
	Rejected("orders", "sort")
	require.Equal(t, before+1, testutil.ToFloat64(QueryRejected.WithLabelValues("orders", "sort")))

	ObserveQuery("products", 3)
	require.Equal(t, 1, testutil.CollectAndCount(QueryResults))
}
