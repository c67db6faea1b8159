package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(FollowEvents.WithLabelValues("follow"))
	FollowEvents.WithLabelValues("follow").Inc()
	assert.InDelta(t, before+1, testutil.ToFloat64(FollowEvents.WithLabelValues("follow")), 0.001)

	before = testutil.ToFloat64(NotificationsCreated.WithLabelValues("liked your post"))
	NotificationsCreated.WithLabelValues("liked your post").Add(2)
	assert.InDelta(t, before+2, testutil.ToFloat64(NotificationsCreated.WithLabelValues("liked your post")), 0.001)
}

func TestCollectorsLint(t *testing.T) {
	LikeEvents.WithLabelValues("like").Inc()
	problems, err := testutil.CollectAndLint(LikeEvents)
	assert.NoError(t, err)
	assert.Empty(t, problems)
}
