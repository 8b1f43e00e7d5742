package reconciler

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/rostermerge/pkg/logging"
	"github.com/agentstation/rostermerge/pkg/names"
	"github.com/agentstation/rostermerge/pkg/provenance"
	"github.com/agentstation/rostermerge/pkg/records"
	"github.com/agentstation/rostermerge/pkg/schema"
)

// Provenance reasons recorded for fused fields.
const (
	reasonOrder    = "first value seen for this order id"
	reasonIdentity = "filled from identity record"
	reasonPartial  = "filled from identity record matched on partial name"
)

// Aggregate fuses the two tables into the canonical table.
//
// Every order entry yields at most one row. Fields take the order value,
// else the value of the identity entry with the same name, else stay
// missing. Rows still lacking an order id or either name part are
// discarded, as are identity entries no order entry claims. The result is
// sorted by first name, last name and order id, with columns in the
// registry's declared order.
func Aggregate(registry *schema.Registry, order *OrderTable, identity *IdentityTable) records.Table {
	return newAggregator(registry, nil, nil).run(order, identity).table
}

// aggregation is the outcome of one aggregator run.
type aggregation struct {
	table      records.Table
	partial    int // order entries resolved through a partial name
	unresolved int // order entries discarded for lack of identity fields
	unclaimed  int // identity entries no order entry matched
}

// aggregator joins the order table to the identity table.
type aggregator struct {
	registry *schema.Registry
	tracker  provenance.Tracker
	logger   *zerolog.Logger
}

func newAggregator(registry *schema.Registry, tracker provenance.Tracker, logger *zerolog.Logger) *aggregator {
	if tracker == nil {
		tracker = provenance.NewTracker(false)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &aggregator{registry: registry, tracker: tracker, logger: logger}
}

func (g *aggregator) run(order *OrderTable, identity *IdentityTable) aggregation {
	var out aggregation
	orderID, first, last := g.registry.OrderID(), g.registry.FirstName(), g.registry.LastName()

	partials := newPartialIndex(identity)
	claimed := make(map[names.Key]bool)
	rows := make([]records.Record, 0, order.Len())

	for _, oe := range order.Entries() {
		key := names.KeyOf(g.registry, oe.Record)

		ie, found := identity.Get(key)
		reason := reasonIdentity
		if !found && !key.Complete() {
			if ie, found = partials.resolve(key); found {
				reason = reasonPartial
				out.partial++
			}
		}

		fused := oe.Record.Clone()
		if found {
			fused = Merge(oe.Record, ie.Record)
			claimed[ie.Key] = true
		}

		if fused.Get(orderID).IsMissing() || fused.Get(first).IsMissing() || fused.Get(last).IsMissing() {
			g.logger.Debug().
				Str("order_id", oe.Key).
				Str("name", key.String()).
				Msg("Discarded order entry without full name")
			out.unresolved++
			continue
		}

		g.track(oe, ie, found, reason, fused)
		rows = append(rows, fused)
	}

	for _, ie := range identity.Entries() {
		if !claimed[ie.Key] {
			out.unclaimed++
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return less(rows[i], rows[j], orderID, first, last)
	})

	out.table = records.Table{Columns: g.registry.Labels(), Rows: rows}
	return out
}

// track records where each present field of a fused row came from.
func (g *aggregator) track(oe Entry[string], ie Entry[names.Key], found bool, reason string, fused records.Record) {
	labels := g.registry.Labels()
	for i, v := range fused {
		if !v.Valid {
			continue
		}
		p := provenance.Provenance{Field: labels[i], Value: v.String}
		if oe.Record.Get(i).Valid || !found {
			p.Source, p.Origin, p.Reason = oe.Source(i), provenance.OriginOrder, reasonOrder
		} else {
			p.Source, p.Origin, p.Reason = ie.Source(i), provenance.OriginIdentity, reason
		}
		g.tracker.Track(oe.Key, labels[i], p)
	}
}

// less orders canonical rows by first name, last name, then order id.
func less(a, b records.Record, orderID, first, last int) bool {
	if c := strings.Compare(a.Get(first).String, b.Get(first).String); c != 0 {
		return c < 0
	}
	if c := strings.Compare(a.Get(last).String, b.Get(last).String); c != 0 {
		return c < 0
	}
	return a.Get(orderID).String < b.Get(orderID).String
}

// partialIndex finds identity entries by a single name part.
type partialIndex struct {
	byFirst map[string][]Entry[names.Key]
	byLast  map[string][]Entry[names.Key]
}

func newPartialIndex(identity *IdentityTable) *partialIndex {
	idx := &partialIndex{
		byFirst: make(map[string][]Entry[names.Key]),
		byLast:  make(map[string][]Entry[names.Key]),
	}
	for _, e := range identity.Entries() {
		idx.byFirst[e.Key.First.String] = append(idx.byFirst[e.Key.First.String], e)
		idx.byLast[e.Key.Last.String] = append(idx.byLast[e.Key.Last.String], e)
	}
	return idx
}

// resolve matches a name with exactly one missing part. It succeeds only
// when the present part identifies a single identity entry.
func (idx *partialIndex) resolve(key names.Key) (Entry[names.Key], bool) {
	var candidates []Entry[names.Key]
	switch {
	case key.First.Valid && !key.Last.Valid:
		candidates = idx.byFirst[key.First.String]
	case !key.First.Valid && key.Last.Valid:
		candidates = idx.byLast[key.Last.String]
	}
	if len(candidates) != 1 {
		return Entry[names.Key]{}, false
	}
	return candidates[0], true
}
