package catalog

import (
	"strings"

	"github.com/jkter/pcpmeta/errs"
	"github.com/jkter/pcpmeta/format"
	"github.com/jkter/pcpmeta/internal/dedup"
)

// indomSnapshot is one observation of an instance domain's contents.
// Instances are kept sorted ascending by id so snapshot comparison and
// instance lookup stay linear.
type indomSnapshot struct {
	stamp     format.Timestamp
	instances []format.Instance
}

// sortInstances sorts instances ascending by id with an insertion sort.
// Archive records are usually close to sorted already, which makes
// insertion sort cheaper than a general-purpose sort here, and it keeps
// equal-id entries in their original order.
func sortInstances(instances []format.Instance) {
	for i := 1; i < len(instances); i++ {
		inst := instances[i]
		j := i
		for j > 0 && inst.ID < instances[j-1].ID {
			instances[j] = instances[j-1]
			j--
		}
		instances[j] = inst
	}
}

// sameSnapshot reports whether two snapshots hold identical instance
// lists. Both lists are sorted, so a positional comparison suffices.
// Timestamps are not compared.
func sameSnapshot(a, b *indomSnapshot) bool {
	if len(a.instances) != len(b.instances) {
		return false
	}

	for i := range a.instances {
		if a.instances[i].ID != b.instances[i].ID ||
			a.instances[i].Name != b.instances[i].Name {
			return false
		}
	}

	return true
}

// AddIndom records a snapshot of an instance domain's contents at the
// given time. The catalog takes ownership of instances and sorts it in
// place.
//
// Snapshots for one indom form a chain sorted by descending timestamp.
// Identical snapshots are filtered out: this is very common in
// multi-archive contexts where the individual archives almost always
// carry the same instance domains. When a duplicate is found at the
// same timestamp, the existing snapshot is moved to the head of its
// time slot, the new one is discarded, and InsertDuplicate is returned
// so the caller knows it still owns whatever backing storage it passed
// in.
func (c *Catalog) AddIndom(indom uint32, stamp format.Timestamp, instances []format.Instance) InsertResult {
	sortInstances(instances)
	snap := &indomSnapshot{stamp: stamp, instances: instances}

	c.mu.Lock()
	defer c.mu.Unlock()

	chain, ok := c.indoms[indom]
	if !ok {
		c.indoms[indom] = []*indomSnapshot{snap}
		return InsertOK
	}

	at := len(chain)
	for i := 0; i < len(chain); i++ {
		cmp := chain[i].stamp.Compare(stamp)
		if cmp < 0 {
			// Older than the new snapshot: insert just before it.
			at = i
			break
		}
		if cmp > 0 {
			continue
		}

		// Same timestamp: scan the run of equal-stamped snapshots for
		// a duplicate. Whether or not one is found, the surviving
		// snapshot ends up at the head of the time slot.
		slot := i
		for j := slot; j < len(chain) && chain[j].stamp.Compare(stamp) == 0; j++ {
			if !sameSnapshot(chain[j], snap) {
				continue
			}

			if j != slot {
				dup := chain[j]
				copy(chain[slot+1:j+1], chain[slot:j])
				chain[slot] = dup
			}

			return InsertDuplicate
		}

		at = slot

		break
	}

	chain = append(chain, nil)
	copy(chain[at+1:], chain[at:])
	chain[at] = snap
	c.indoms[indom] = chain

	return InsertOK
}

// searchIndomLocked returns the snapshot in effect at the given time:
// the head of the chain when stamp is nil, otherwise the first
// (newest) snapshot at or earlier than stamp. It returns nil when the
// indom is unknown or every snapshot is later than the requested time.
func (c *Catalog) searchIndomLocked(indom uint32, stamp *format.Timestamp) *indomSnapshot {
	chain, ok := c.indoms[indom]
	if !ok || len(chain) == 0 {
		return nil
	}

	if stamp == nil {
		return chain[0]
	}

	for _, snap := range chain {
		if snap.stamp.Compare(*stamp) <= 0 {
			return snap
		}
	}

	return nil
}

// GetIndom returns the instance domain contents in effect at the given
// time, or the latest contents when stamp is nil. The returned slice is
// the caller's to keep; the instances themselves are shared with the
// catalog and must not be modified.
func (c *Catalog) GetIndom(indom uint32, stamp *format.Timestamp) ([]format.Instance, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := c.searchIndomLocked(indom, stamp)
	if snap == nil {
		return nil, errs.ErrIndomNotFound
	}

	out := make([]format.Instance, len(snap.instances))
	copy(out, snap.instances)

	return out, nil
}

// LookupIndomInstance resolves an instance name to its id within the
// snapshot in effect at the given time. An exact name match is tried
// first; as a fallback for external instance names of the form
// "id extra-text", a prefix match up to the first space in the stored
// name is accepted. The fallback is kept for backward compatibility and
// should not be relied on as a primary lookup.
func (c *Catalog) LookupIndomInstance(indom uint32, stamp *format.Timestamp, name string) (int32, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := c.searchIndomLocked(indom, stamp)
	if snap == nil {
		return 0, errs.ErrIndomNotFound
	}

	for _, inst := range snap.instances {
		if inst.Name == name {
			return inst.ID, nil
		}
	}

	for _, inst := range snap.instances {
		if sp := strings.IndexByte(inst.Name, ' '); sp >= 0 && inst.Name[:sp] == name {
			return inst.ID, nil
		}
	}

	return 0, errs.ErrInstanceNotFound
}

// NameInIndom resolves an instance id to its name within the snapshot
// in effect at the given time.
func (c *Catalog) NameInIndom(indom uint32, stamp *format.Timestamp, inst int32) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := c.searchIndomLocked(indom, stamp)
	if snap == nil {
		return "", errs.ErrIndomNotFound
	}

	for _, i := range snap.instances {
		if i.ID == inst {
			return i.Name, nil
		}
	}

	return "", errs.ErrInstanceNotFound
}

// GetIndomUnion returns the union of instances across every snapshot of
// the indom, newest snapshot first, keeping the first-seen name for
// each instance id. Small snapshots are deduplicated with a linear
// scan; once any snapshot exceeds the union threshold a per-call hashed
// set takes over.
func (c *Catalog) GetIndomUnion(indom uint32) ([]format.Instance, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	chain, ok := c.indoms[indom]
	if !ok || len(chain) == 0 {
		return nil, errs.ErrIndomNotFound
	}

	big := false
	for _, snap := range chain {
		if len(snap.instances) > c.unionThreshold {
			big = true
			break
		}
	}

	var out []format.Instance

	if big {
		set := dedup.NewInstanceSet(len(chain[0].instances))
		for _, snap := range chain {
			for _, inst := range snap.instances {
				if set.AddIfAbsent(inst.ID, inst.Name) {
					out = append(out, inst)
				}
			}
		}

		return out, nil
	}

	for _, snap := range chain {
		for _, inst := range snap.instances {
			seen := false
			for _, have := range out {
				if have.ID == inst.ID {
					seen = true
					break
				}
			}
			if !seen {
				out = append(out, inst)
			}
		}
	}

	return out, nil
}

// NumIndomSnapshots returns the number of snapshots recorded for indom.
func (c *Catalog) NumIndomSnapshots(indom uint32) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.indoms[indom])
}

// IndomSnapshotStamps returns the timestamps of the indom's snapshots
// in chain order (descending).
func (c *Catalog) IndomSnapshotStamps(indom uint32) []format.Timestamp {
	c.mu.RLock()
	defer c.mu.RUnlock()

	chain := c.indoms[indom]
	stamps := make([]format.Timestamp, len(chain))
	for i, snap := range chain {
		stamps[i] = snap.stamp
	}

	return stamps
}
