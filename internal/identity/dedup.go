package identity

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// DupRecord is one row of an identity store reduced to its id and natural
// key (email or username depending on the store).
type DupRecord struct {
	ID  int64
	Key string
}

// DupStore is an identity store the dedup batch can scan and prune.
type DupStore interface {
	Name() string
	List(ctx context.Context) ([]DupRecord, error)
	Delete(ctx context.Context, id int64) error
}

// DupGroup is a set of rows sharing a natural key.
type DupGroup struct {
	Key     string
	Records []DupRecord
}

// Outcome reports what ResolveDuplicates did (or would do) for one group.
type Outcome struct {
	Key     string
	Kept    DupRecord
	Deleted []int64
	Failed  []int64
}

// Deduper is the offline correction pass over the identity stores. It
// assumes no concurrent writers for the duration of a run; that is an
// operational precondition, not an enforced lock.
type Deduper struct {
	logger *zap.Logger
}

// NewDeduper builds a Deduper.
func NewDeduper(logger *zap.Logger) *Deduper {
	return &Deduper{logger: logger}
}

// FindDuplicates groups a store's rows by natural key and returns the groups
// with more than one member. Pure read; safe to run arbitrarily often.
// Rows with an empty key are ignored. Groups come back sorted by key and
// members sorted by descending id, so output is stable across runs.
func (d *Deduper) FindDuplicates(ctx context.Context, store DupStore) ([]DupGroup, error) {
	records, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string][]DupRecord)
	for _, rec := range records {
		key := normalizeKey(rec.Key)
		if key == "" {
			continue
		}
		byKey[key] = append(byKey[key], DupRecord{ID: rec.ID, Key: key})
	}

	var groups []DupGroup
	for key, members := range byKey {
		if len(members) < 2 {
			continue
		}
		sort.Slice(members, func(i, j int) bool { return members[i].ID > members[j].ID })
		groups = append(groups, DupGroup{Key: key, Records: members})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups, nil
}

// ResolveDuplicates keeps the most recent member of each duplicate group
// (highest id — neither store has a reliable creation timestamp) and deletes
// the rest. With commit=false no mutating call is made; the outcomes report
// the deletions that a committed run would perform.
//
// A failed per-row delete is logged and skipped so a partial run still makes
// forward progress; re-running converges on zero duplicates.
func (d *Deduper) ResolveDuplicates(ctx context.Context, store DupStore, commit bool) ([]Outcome, error) {
	groups, err := d.FindDuplicates(ctx, store)
	if err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, 0, len(groups))
	for _, group := range groups {
		keep := group.Records[0]
		for _, rec := range group.Records[1:] {
			if rec.ID > keep.ID {
				keep = rec
			}
		}

		outcome := Outcome{Key: group.Key, Kept: keep}
		for _, rec := range group.Records {
			if rec.ID == keep.ID {
				continue
			}
			if !commit {
				outcome.Deleted = append(outcome.Deleted, rec.ID)
				continue
			}
			if err := store.Delete(ctx, rec.ID); err != nil {
				d.logger.Warn("dedup delete failed, skipping row",
					zap.String("store", store.Name()),
					zap.String("key", group.Key),
					zap.Int64("id", rec.ID),
					zap.Error(err),
				)
				outcome.Failed = append(outcome.Failed, rec.ID)
				continue
			}
			d.logger.Info("dedup deleted duplicate row",
				zap.String("store", store.Name()),
				zap.String("key", group.Key),
				zap.Int64("id", rec.ID),
				zap.Int64("kept", keep.ID),
			)
			outcome.Deleted = append(outcome.Deleted, rec.ID)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// CrossReport is the read-only diagnostic from CrossReference.
type CrossReport struct {
	Common      int
	AOnly       int
	BOnly       int
	AOnlySample []string
	BOnlySample []string
}

const crossSampleLimit = 5

// CrossReference compares the natural keys present in two stores. It is a
// diagnostic, not a repair action.
func (d *Deduper) CrossReference(ctx context.Context, a, b DupStore) (*CrossReport, error) {
	aRecords, err := a.List(ctx)
	if err != nil {
		return nil, err
	}
	bRecords, err := b.List(ctx)
	if err != nil {
		return nil, err
	}

	aKeys := keySet(aRecords)
	bKeys := keySet(bRecords)

	report := &CrossReport{}
	var aOnly, bOnly []string
	for key := range aKeys {
		if _, ok := bKeys[key]; ok {
			report.Common++
		} else {
			aOnly = append(aOnly, key)
		}
	}
	for key := range bKeys {
		if _, ok := aKeys[key]; !ok {
			bOnly = append(bOnly, key)
		}
	}
	report.AOnly = len(aOnly)
	report.BOnly = len(bOnly)
	sort.Strings(aOnly)
	sort.Strings(bOnly)
	report.AOnlySample = sample(aOnly)
	report.BOnlySample = sample(bOnly)
	return report, nil
}

func keySet(records []DupRecord) map[string]struct{} {
	keys := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if key := normalizeKey(rec.Key); key != "" {
			keys[key] = struct{}{}
		}
	}
	return keys
}

func sample(keys []string) []string {
	if len(keys) > crossSampleLimit {
		return keys[:crossSampleLimit]
	}
	return keys
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
