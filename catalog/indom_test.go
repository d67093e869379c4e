package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jkter/pcpmeta/errs"
	"github.com/jkter/pcpmeta/format"
)

func stamp(sec int64) format.Timestamp {
	return format.Timestamp{Sec: sec}
}

func stampRef(sec int64) *format.Timestamp {
	ts := stamp(sec)
	return &ts
}

func insts(pairs ...format.Instance) []format.Instance {
	return append([]format.Instance(nil), pairs...)
}

func TestAddIndom_SortsInstances(t *testing.T) {
	cat := newTestCatalog(t)

	res := cat.AddIndom(5, stamp(10), insts(
		format.Instance{ID: 3, Name: "c"},
		format.Instance{ID: 1, Name: "a"},
		format.Instance{ID: 2, Name: "b"},
	))
	require.Equal(t, InsertOK, res)

	got, err := cat.GetIndom(5, nil)
	require.NoError(t, err)
	require.Equal(t, insts(
		format.Instance{ID: 1, Name: "a"},
		format.Instance{ID: 2, Name: "b"},
		format.Instance{ID: 3, Name: "c"},
	), got)
}

func TestAddIndom_DuplicateAtEqualTimestamp(t *testing.T) {
	cat := newTestCatalog(t)

	res := cat.AddIndom(5, stamp(10), insts(
		format.Instance{ID: 1, Name: "a"},
		format.Instance{ID: 2, Name: "b"},
	))
	require.Equal(t, InsertOK, res)

	// Same contents in a different order is still the same snapshot.
	res = cat.AddIndom(5, stamp(10), insts(
		format.Instance{ID: 2, Name: "b"},
		format.Instance{ID: 1, Name: "a"},
	))
	require.Equal(t, InsertDuplicate, res)
	require.Equal(t, 1, cat.NumIndomSnapshots(5))
}

func TestAddIndom_TimeSlotHeadMigration(t *testing.T) {
	cat := newTestCatalog(t)

	snapA := insts(format.Instance{ID: 1, Name: "a"})
	snapB := insts(format.Instance{ID: 2, Name: "b"})

	require.Equal(t, InsertOK, cat.AddIndom(5, stamp(10), snapA))
	require.Equal(t, InsertOK, cat.AddIndom(5, stamp(10), snapB))

	// B was inserted at the head of the t=10 slot, so the latest view
	// is B.
	got, err := cat.GetIndom(5, nil)
	require.NoError(t, err)
	require.Equal(t, snapB, got)

	// Re-inserting A's contents is a duplicate, and the surviving A
	// migrates back to the head of its time slot.
	res := cat.AddIndom(5, stamp(10), insts(format.Instance{ID: 1, Name: "a"}))
	require.Equal(t, InsertDuplicate, res)
	require.Equal(t, 2, cat.NumIndomSnapshots(5))

	got, err = cat.GetIndom(5, nil)
	require.NoError(t, err)
	require.Equal(t, snapA, got)
}

func TestAddIndom_DescendingOrderMaintained(t *testing.T) {
	cat := newTestCatalog(t)

	// Out-of-order inserts, as happens when merging archives.
	for _, sec := range []int64{20, 40, 10, 30, 25} {
		cat.AddIndom(5, stamp(sec), insts(format.Instance{ID: int32(sec), Name: "x"}))
	}

	stamps := cat.IndomSnapshotStamps(5)
	require.Len(t, stamps, 5)
	for i := 1; i < len(stamps); i++ {
		require.True(t, stamps[i-1].After(stamps[i]),
			"chain must be strictly descending at %d: %v", i, stamps)
	}
}

func TestGetIndom_PointInTime(t *testing.T) {
	cat := newTestCatalog(t)

	for _, sec := range []int64{30, 20, 10} {
		cat.AddIndom(5, stamp(sec), insts(format.Instance{ID: int32(sec), Name: "x"}))
	}

	t.Run("between snapshots", func(t *testing.T) {
		got, err := cat.GetIndom(5, stampRef(25))
		require.NoError(t, err)
		require.Equal(t, int32(20), got[0].ID)
	})

	t.Run("exact match", func(t *testing.T) {
		got, err := cat.GetIndom(5, stampRef(30))
		require.NoError(t, err)
		require.Equal(t, int32(30), got[0].ID)
	})

	t.Run("before all snapshots", func(t *testing.T) {
		_, err := cat.GetIndom(5, stampRef(5))
		require.ErrorIs(t, err, errs.ErrIndomNotFound)
	})

	t.Run("after all snapshots", func(t *testing.T) {
		got, err := cat.GetIndom(5, stampRef(100))
		require.NoError(t, err)
		require.Equal(t, int32(30), got[0].ID)
	})

	t.Run("no stamp returns latest", func(t *testing.T) {
		got, err := cat.GetIndom(5, nil)
		require.NoError(t, err)
		require.Equal(t, int32(30), got[0].ID)
	})

	t.Run("unknown indom", func(t *testing.T) {
		_, err := cat.GetIndom(6, nil)
		require.ErrorIs(t, err, errs.ErrIndomNotFound)
	})
}

func TestLookupIndomInstance(t *testing.T) {
	cat := newTestCatalog(t)
	cat.AddIndom(5, stamp(10), insts(
		format.Instance{ID: 1, Name: "sda"},
		format.Instance{ID: 2, Name: "sdb some qualifier"},
	))

	t.Run("exact match", func(t *testing.T) {
		id, err := cat.LookupIndomInstance(5, nil, "sda")
		require.NoError(t, err)
		require.Equal(t, int32(1), id)
	})

	t.Run("prefix match to first space", func(t *testing.T) {
		id, err := cat.LookupIndomInstance(5, nil, "sdb")
		require.NoError(t, err)
		require.Equal(t, int32(2), id)
	})

	t.Run("exact match wins over prefix", func(t *testing.T) {
		cat := newTestCatalog(t)
		cat.AddIndom(5, stamp(10), insts(
			format.Instance{ID: 1, Name: "cpu extra"},
			format.Instance{ID: 2, Name: "cpu"},
		))

		id, err := cat.LookupIndomInstance(5, nil, "cpu")
		require.NoError(t, err)
		require.Equal(t, int32(2), id)
	})

	t.Run("miss", func(t *testing.T) {
		_, err := cat.LookupIndomInstance(5, nil, "sdz")
		require.ErrorIs(t, err, errs.ErrInstanceNotFound)
	})
}

func TestNameInIndom(t *testing.T) {
	cat := newTestCatalog(t)
	cat.AddIndom(5, stamp(10), insts(format.Instance{ID: 7, Name: "lo"}))

	name, err := cat.NameInIndom(5, nil, 7)
	require.NoError(t, err)
	require.Equal(t, "lo", name)

	_, err = cat.NameInIndom(5, nil, 8)
	require.ErrorIs(t, err, errs.ErrInstanceNotFound)
}

func TestGetIndomUnion(t *testing.T) {
	run := func(t *testing.T, opts ...Option) {
		cat := newTestCatalog(t, opts...)

		cat.AddIndom(5, stamp(10), insts(
			format.Instance{ID: 1, Name: "one"},
			format.Instance{ID: 2, Name: "two"},
		))
		cat.AddIndom(5, stamp(20), insts(
			format.Instance{ID: 2, Name: "two-renamed"},
			format.Instance{ID: 3, Name: "three"},
		))

		got, err := cat.GetIndomUnion(5)
		require.NoError(t, err)
		require.Len(t, got, 3)

		byID := map[int32]string{}
		for _, inst := range got {
			byID[inst.ID] = inst.Name
		}

		// The newest snapshot is scanned first, so its name wins for
		// instance 2.
		require.Equal(t, map[int32]string{
			1: "one",
			2: "two-renamed",
			3: "three",
		}, byID)
	}

	t.Run("linear", func(t *testing.T) { run(t) })
	t.Run("hashed", func(t *testing.T) { run(t, WithUnionHashThreshold(1)) })
}

func TestGetIndomUnion_UnknownIndom(t *testing.T) {
	cat := newTestCatalog(t)

	_, err := cat.GetIndomUnion(5)
	require.ErrorIs(t, err, errs.ErrIndomNotFound)
}
