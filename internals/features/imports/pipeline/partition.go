package pipeline

import (
	"sort"
	"strings"
)

// CanonicalColumns are the fixed student slots; every other column is an
// extension field.
var CanonicalColumns = []string{"name", "email", "score", "student_id", "subject", "batch", "comment"}

// ColumnOrderKey carries the extension bag's display order through JSON and
// the database. The explicit list is the canonical source of order; map
// iteration never is.
const ColumnOrderKey = "_column_order"

// ExtraField is one extension column's key and coerced value.
type ExtraField struct {
	Key   string
	Value any
}

// ExtensionBag holds the non-canonical fields of one row in original file
// order, plus the order list itself.
type ExtensionBag struct {
	Fields []ExtraField
	Order  []string
}

func (b *ExtensionBag) Empty() bool { return len(b.Fields) == 0 }

// ToMap flattens the bag for JSON/JSONB storage, embedding the order list
// under ColumnOrderKey.
func (b *ExtensionBag) ToMap() map[string]any {
	if b.Empty() {
		return nil
	}
	m := make(map[string]any, len(b.Fields)+1)
	for _, f := range b.Fields {
		m[f.Key] = f.Value
	}
	m[ColumnOrderKey] = append([]string(nil), b.Order...)
	return m
}

// BagFromMap rebuilds a bag from its stored map form, replaying the embedded
// order list. Keys missing from the order list (e.g. a comment mirrored in
// later) are appended after the ordered ones so nothing is lost.
func BagFromMap(m map[string]any) ExtensionBag {
	var bag ExtensionBag
	if len(m) == 0 {
		return bag
	}
	seen := make(map[string]struct{}, len(m))
	if rawOrder, ok := m[ColumnOrderKey]; ok {
		switch ord := rawOrder.(type) {
		case []string:
			for _, k := range ord {
				if v, present := m[k]; present {
					bag.Fields = append(bag.Fields, ExtraField{Key: k, Value: v})
					bag.Order = append(bag.Order, k)
					seen[k] = struct{}{}
				}
			}
		case []any:
			for _, kv := range ord {
				k, isStr := kv.(string)
				if !isStr {
					continue
				}
				if v, present := m[k]; present {
					bag.Fields = append(bag.Fields, ExtraField{Key: k, Value: v})
					bag.Order = append(bag.Order, k)
					seen[k] = struct{}{}
				}
			}
		}
	}
	var rest []string
	for k := range m {
		if k == ColumnOrderKey {
			continue
		}
		if _, done := seen[k]; done {
			continue
		}
		rest = append(rest, k)
	}
	sort.Strings(rest)
	for _, k := range rest {
		bag.Fields = append(bag.Fields, ExtraField{Key: k, Value: m[k]})
		bag.Order = append(bag.Order, k)
	}
	return bag
}

// Record is one partitioned row: canonical slots plus the ordered extension
// bag. Absent optional slots are nil.
type Record struct {
	StudentID any
	Name      any
	Email     string
	Score     float64
	Subject   any
	Batch     any
	Comment   any
	Extra     ExtensionBag
}

// Partition splits every normalized row into canonical fields and extension
// fields. Rows whose email coerces to absent are dropped; nothing else ever
// disqualifies a row. Pure transform.
func Partition(n *Normalized) []Record {
	canonical := make(map[string]struct{}, len(CanonicalColumns))
	for _, c := range CanonicalColumns {
		canonical[c] = struct{}{}
	}

	records := make([]Record, 0, len(n.Rows))
	for _, row := range n.Rows {
		var rec Record
		admitted := false

		for i, col := range n.Columns {
			raw := row[i]
			if _, isCanonical := canonical[col]; isCanonical {
				switch col {
				case "email":
					if !IsAbsentString(raw) {
						rec.Email = strings.TrimSpace(raw)
						admitted = true
					}
				case "score":
					rec.Score = CoerceScore(raw)
				case "name":
					rec.Name = Coerce(raw)
				case "student_id":
					rec.StudentID = Coerce(raw)
				case "subject":
					rec.Subject = Coerce(raw)
				case "batch":
					rec.Batch = Coerce(raw)
				case "comment":
					rec.Comment = Coerce(raw)
				}
				continue
			}
			// Extension field, kept in file order, absent values skipped.
			if v := Coerce(raw); v != nil {
				rec.Extra.Fields = append(rec.Extra.Fields, ExtraField{Key: col, Value: v})
				rec.Extra.Order = append(rec.Extra.Order, col)
			}
		}

		if !admitted {
			continue
		}
		records = append(records, rec)
	}
	return records
}
