// Package contribution implements the processor that validates and
// records pool contributions.
//
// The processor is the second line of defense behind the membership
// ledger: it re-checks the contribution cap and enforces its own
// per-contributor interval independently of the ledger's contribution
// throttle. It is constructed by and callable only through the ledger.
package contribution

import (
	"time"

	"github.com/mutualpool/libmutualpool-go/config"
	"github.com/mutualpool/libmutualpool-go/encval"
	"github.com/mutualpool/libmutualpool-go/identity"
)

// record tracks one contributor's processing history.
type record struct {
	lastAmount  *encval.Value
	total       *encval.Value
	lastProcess time.Time
}

// Processor validates and accumulates contributions.
type Processor struct {
	maxContribution *encval.Value
	minInterval     time.Duration
	records         map[identity.Principal]*record
}

// NewProcessor creates a processor with the given parameters.
func NewProcessor(params config.Params) (*Processor, error) {
	maxVal, err := encval.New(identity.Principal{}, params.MaxContribution)
	if err != nil {
		return nil, err
	}
	return &Processor{
		maxContribution: maxVal,
		minInterval:     params.MinProcessInterval,
		records:         make(map[identity.Principal]*record),
	}, nil
}

// CheckProcess verifies the preconditions of Process without mutating
// anything. A nil return guarantees the matching Process call succeeds.
func (p *Processor) CheckProcess(contributor identity.Principal, amount *encval.Value, now time.Time) error {
	if amount.Cmp(p.maxContribution) > 0 {
		return ErrContributionTooLarge
	}
	if rec, ok := p.records[contributor]; ok && !rec.lastProcess.IsZero() {
		if now.Sub(rec.lastProcess) < p.minInterval {
			return ErrProcessTooFrequent
		}
	}
	// Accumulation cannot overflow after the cap check short of 2^256
	// total processed value, which the caps make unreachable.
	return nil
}

// Process records a contribution: remembers the last amount, accumulates
// the contributor's processed total, and stamps the process time.
func (p *Processor) Process(contributor identity.Principal, amount *encval.Value, now time.Time) error {
	if err := p.CheckProcess(contributor, amount, now); err != nil {
		return err
	}
	rec, ok := p.records[contributor]
	if !ok {
		rec = &record{total: encval.Zero(contributor)}
		p.records[contributor] = rec
	}
	total, err := rec.total.Add(amount.Rebind(contributor))
	if err != nil {
		return err
	}
	rec.lastAmount = amount.Rebind(contributor)
	rec.total = total
	rec.lastProcess = now
	return nil
}

// LastContributionAmount discloses the contributor's most recent
// processed amount to the contributor themself.
func (p *Processor) LastContributionAmount(cap identity.Capability) (*encval.Value, error) {
	rec, ok := p.records[cap.Principal()]
	if !ok || rec.lastAmount == nil {
		return nil, ErrNoRecord
	}
	return rec.lastAmount.Clone(), nil
}

// TotalProcessedValue discloses the contributor's cumulative processed
// value to the contributor themself.
func (p *Processor) TotalProcessedValue(cap identity.Capability) (*encval.Value, error) {
	rec, ok := p.records[cap.Principal()]
	if !ok {
		return nil, ErrNoRecord
	}
	return rec.total.Clone(), nil
}

// LastProcessTime returns the contributor's last process timestamp
// (plaintext, like all timestamps in the pool).
func (p *Processor) LastProcessTime(contributor identity.Principal) (time.Time, error) {
	rec, ok := p.records[contributor]
	if !ok {
		return time.Time{}, ErrNoRecord
	}
	return rec.lastProcess, nil
}

// Record is the exported snapshot of one contributor's state, used by the
// persistence layer.
type Record struct {
	Contributor     identity.Principal
	LastAmount      *encval.Value // nil if never processed
	Total           *encval.Value
	LastProcessTime time.Time
}

// Records returns a snapshot of all contributor records.
func (p *Processor) Records() []Record {
	out := make([]Record, 0, len(p.records))
	for contributor, rec := range p.records {
		r := Record{
			Contributor:     contributor,
			Total:           rec.total.Clone(),
			LastProcessTime: rec.lastProcess,
		}
		if rec.lastAmount != nil {
			r.LastAmount = rec.lastAmount.Clone()
		}
		out = append(out, r)
	}
	return out
}

// Restore installs a contributor record loaded from the store.
func (p *Processor) Restore(r Record) {
	rec := &record{
		total:       r.Total.Clone(),
		lastProcess: r.LastProcessTime,
	}
	if r.LastAmount != nil {
		rec.lastAmount = r.LastAmount.Clone()
	}
	p.records[r.Contributor] = rec
}
