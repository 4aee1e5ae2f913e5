package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/pickle/internal/db"
)

func runList(t *testing.T, status string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunList(&buf, testJournal, status))
	return buf.String()
}

func setupRun(t *testing.T, tags ...string) {
	t.Helper()
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/login.feature", loginFeature)
	writeFeature(t, "features/shop/checkout.feature", checkoutFeature)

	opts := discoverOptions("features")
	opts.Tags = tags
	runDiscover(t, opts)
}

func TestList_LatestRun(t *testing.T) {
	setupRun(t)

	out := runList(t, "")

	assert.Contains(t, out, "features/login.feature:3")
	assert.Contains(t, out, "User logs in")
	assert.Contains(t, out, "@smoke")
	assert.Contains(t, out, "User buys 3 items")
	assert.Contains(t, out, "TOTAL 4")
}

func TestList_DiscoveryOrder(t *testing.T) {
	setupRun(t)

	out := runList(t, "")

	first := strings.Index(out, "User logs in")
	second := strings.Index(out, "User fails login")
	third := strings.Index(out, "User buys 1 items")
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestList_FilterByStatus(t *testing.T) {
	setupRun(t, "@smoke")

	out := runList(t, db.StatusAccepted)
	assert.Contains(t, out, "User logs in")
	assert.NotContains(t, out, "User fails login")

	out = runList(t, db.StatusRejected)
	assert.NotContains(t, out, "User logs in")
	assert.Contains(t, out, "User fails login")
	assert.Contains(t, out, "TOTAL 3")
}

func TestList_OnlyLatestRun(t *testing.T) {
	setupRun(t, "@smoke")
	runDiscover(t, discoverOptions("features/login.feature"))

	out := runList(t, db.StatusRejected)
	assert.Empty(t, out)
}

func TestList_InvalidStatus(t *testing.T) {
	setupRun(t)

	err := RunList(&bytes.Buffer{}, testJournal, "pending")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status")
}

func TestList_RequiresInit(t *testing.T) {
	inTempDir(t)

	err := RunList(&bytes.Buffer{}, testJournal, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pickle init")
}

func TestList_NoRuns(t *testing.T) {
	inTempDir(t)
	runInit(t)

	err := RunList(&bytes.Buffer{}, testJournal, "")
	assert.ErrorIs(t, err, db.ErrNoRuns)
}
