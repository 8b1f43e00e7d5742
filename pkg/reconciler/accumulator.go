package reconciler

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/rostermerge/pkg/logging"
	"github.com/agentstation/rostermerge/pkg/names"
	"github.com/agentstation/rostermerge/pkg/records"
	"github.com/agentstation/rostermerge/pkg/schema"
)

// UnkeyableRowWarning describes a record without an order id whose name is
// incomplete. Such a record can join neither table and is dropped.
type UnkeyableRowWarning struct {
	Source string    // sheet the record came from
	Index  int       // position within the absorbed batch
	Name   names.Key // the partial name
}

// String implements fmt.Stringer.
func (w UnkeyableRowWarning) String() string {
	return fmt.Sprintf("%s: record %d has no order id and an incomplete name (%s)", w.Source, w.Index, w.Name)
}

// Absorbed counts what one Absorb call did with its records.
type Absorbed struct {
	Order     int // merged into the order table
	Identity  int // merged into the identity table
	Filtered  int // rejected by the name filter
	Unkeyable int // dropped, see UnkeyableRowWarning
}

// Total returns the number of records seen.
func (a Absorbed) Total() int {
	return a.Order + a.Identity + a.Filtered + a.Unkeyable
}

func (a *Absorbed) add(b Absorbed) {
	a.Order += b.Order
	a.Identity += b.Identity
	a.Filtered += b.Filtered
	a.Unkeyable += b.Unkeyable
}

// Accumulator holds the order and identity tables of a run.
type Accumulator struct {
	registry  *schema.Registry
	filter    *filter
	logger    *zerolog.Logger
	order     *OrderTable
	identity  *IdentityTable
	totals    Absorbed
	unkeyable []UnkeyableRowWarning
}

// NewAccumulator creates an empty accumulator. Only WithNameFilter and
// WithLogger affect it; other options are accepted and ignored.
func NewAccumulator(registry *schema.Registry, opts ...Option) (*Accumulator, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return newAccumulator(registry, options), nil
}

func newAccumulator(registry *schema.Registry, options *options) *Accumulator {
	logger := options.logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Accumulator{
		registry: registry,
		filter:   newFilter(options.allow),
		logger:   logger,
		order:    NewTable[string](),
		identity: NewTable[names.Key](),
	}
}

// Absorb partitions normalized, name-canonicalized records into the two
// tables. Records with an order id merge into the order table; the rest merge
// into the identity table when both name parts are present and are dropped
// otherwise. Absorbing the same records twice leaves both tables unchanged.
func (a *Accumulator) Absorb(source string, recs []records.Record) Absorbed {
	return a.absorb(source, recs, a.logger)
}

func (a *Accumulator) absorb(source string, recs []records.Record, logger *zerolog.Logger) Absorbed {
	var n Absorbed
	orderID := a.registry.OrderID()

	for i, rec := range recs {
		key := names.KeyOf(a.registry, rec)
		if !a.filter.keep(key) {
			n.Filtered++
			continue
		}

		if id := rec.Get(orderID); id.Valid {
			a.order.Put(id.String, rec, source)
			n.Order++
			continue
		}

		if !key.Complete() {
			w := UnkeyableRowWarning{Source: source, Index: i, Name: key}
			a.unkeyable = append(a.unkeyable, w)
			logger.Debug().
				Str("source", source).
				Int("record", i).
				Str("name", key.String()).
				Msg("Dropped record without order id or full name")
			n.Unkeyable++
			continue
		}

		a.identity.Put(key, rec, source)
		n.Identity++
	}

	a.totals.add(n)
	return n
}

// OrderTable returns the table keyed by order id.
func (a *Accumulator) OrderTable() *OrderTable {
	return a.order
}

// IdentityTable returns the table keyed by name.
func (a *Accumulator) IdentityTable() *IdentityTable {
	return a.identity
}

// Totals returns the counts summed over every Absorb call.
func (a *Accumulator) Totals() Absorbed {
	return a.totals
}

// Unkeyable returns the dropped records in absorb order.
func (a *Accumulator) Unkeyable() []UnkeyableRowWarning {
	return append([]UnkeyableRowWarning(nil), a.unkeyable...)
}
