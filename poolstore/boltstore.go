package poolstore

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/mutualpool/libmutualpool-go/contribution"
	"github.com/mutualpool/libmutualpool-go/distribution"
	"github.com/mutualpool/libmutualpool-go/encval"
	"github.com/mutualpool/libmutualpool-go/identity"
	"github.com/mutualpool/libmutualpool-go/membership"
)

var (
	bucketState         = []byte("state")
	bucketMembers       = []byte("members")
	bucketAccounts      = []byte("accounts")
	bucketContributions = []byte("contributions")

	stateKey = []byte("pool")
)

// BoltStore wraps a bbolt database for durable pool state. Encrypted
// fields are sealed before they touch the disk.
type BoltStore struct {
	db     *bbolt.DB
	sealer *encval.Sealer
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath. The
// parent directory is created if it does not exist.
func OpenBoltStore(dbPath string, sealer *encval.Sealer) (*BoltStore, error) {
	if sealer == nil {
		return nil, ErrNoSealer
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("poolstore: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("poolstore: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketState, bucketMembers, bucketAccounts, bucketContributions} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("poolstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("poolstore: create buckets: %w", err)
	}

	return &BoltStore{db: db, sealer: sealer}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// Row layouts. Encrypted fields hold sealed bytes.

type poolStateRow struct {
	Principal        identity.Principal
	Admin            identity.Principal
	Paused           bool
	CreatedAt        time.Time
	TotalCommitment  []byte
	TotalDistributed []byte
}

type memberRow struct {
	Principal            identity.Principal
	Commitment           []byte
	Active               []byte
	JoinTime             time.Time
	TotalContributed     []byte
	LastContributionTime time.Time
}

type accountRow struct {
	Member               identity.Principal
	Commitment           []byte
	Pending              []byte
	Received             []byte
	LastDistributionTime time.Time
	LastCommitmentUpdate time.Time
}

type contributionRow struct {
	Contributor     identity.Principal
	LastAmount      []byte // nil if never processed
	Total           []byte
	LastProcessTime time.Time
}

// PutPoolState stores the pool-aggregate state.
func (s *BoltStore) PutPoolState(state *PoolState) error {
	if state == nil {
		return ErrNilRecord
	}
	totalCommitment, err := s.sealer.Seal(state.TotalCommitment)
	if err != nil {
		return fmt.Errorf("poolstore: seal total commitment: %w", err)
	}
	totalDistributed, err := s.sealer.Seal(state.TotalDistributed)
	if err != nil {
		return fmt.Errorf("poolstore: seal total distributed: %w", err)
	}
	row := poolStateRow{
		Principal:        state.Principal,
		Admin:            state.Admin,
		Paused:           state.Paused,
		CreatedAt:        state.CreatedAt,
		TotalCommitment:  totalCommitment,
		TotalDistributed: totalDistributed,
	}
	data, err := encodeGob(&row)
	if err != nil {
		return fmt.Errorf("poolstore: encode pool state: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketState).Put(stateKey, data)
	})
}

// GetPoolState retrieves the pool-aggregate state.
func (s *BoltStore) GetPoolState() (*PoolState, error) {
	var row poolStateRow
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketState).Get(stateKey)
		if data == nil {
			return ErrStateNotFound
		}
		if err := decodeGob(data, &row); err != nil {
			return fmt.Errorf("poolstore: decode pool state: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	totalCommitment, err := s.sealer.Open(row.Principal, row.TotalCommitment)
	if err != nil {
		return nil, fmt.Errorf("poolstore: open total commitment: %w", err)
	}
	totalDistributed, err := s.sealer.Open(row.Principal, row.TotalDistributed)
	if err != nil {
		return nil, fmt.Errorf("poolstore: open total distributed: %w", err)
	}
	return &PoolState{
		Principal:        row.Principal,
		Admin:            row.Admin,
		Paused:           row.Paused,
		CreatedAt:        row.CreatedAt,
		TotalCommitment:  totalCommitment,
		TotalDistributed: totalDistributed,
	}, nil
}

// PutMember stores a membership record keyed by principal.
func (s *BoltStore) PutMember(rec membership.MemberRecord) error {
	commitment, err := s.sealer.Seal(rec.Commitment)
	if err != nil {
		return fmt.Errorf("poolstore: seal commitment: %w", err)
	}
	active, err := s.sealer.SealFlag(rec.Active)
	if err != nil {
		return fmt.Errorf("poolstore: seal active flag: %w", err)
	}
	total, err := s.sealer.Seal(rec.TotalContributed)
	if err != nil {
		return fmt.Errorf("poolstore: seal total contributed: %w", err)
	}
	row := memberRow{
		Principal:            rec.Principal,
		Commitment:           commitment,
		Active:               active,
		JoinTime:             rec.JoinTime,
		TotalContributed:     total,
		LastContributionTime: rec.LastContributionTime,
	}
	data, err := encodeGob(&row)
	if err != nil {
		return fmt.Errorf("poolstore: encode member: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMembers).Put(rec.Principal[:], data)
	})
}

// ListMembers returns all membership records.
func (s *BoltStore) ListMembers() ([]membership.MemberRecord, error) {
	var rows []memberRow
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMembers).ForEach(func(k, v []byte) error {
			var row memberRow
			if err := decodeGob(v, &row); err != nil {
				return fmt.Errorf("poolstore: decode member: %w", err)
			}
			rows = append(rows, row)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	out := make([]membership.MemberRecord, 0, len(rows))
	for _, row := range rows {
		commitment, err := s.sealer.Open(row.Principal, row.Commitment)
		if err != nil {
			return nil, fmt.Errorf("poolstore: open commitment: %w", err)
		}
		active, err := s.sealer.OpenFlag(row.Principal, row.Active)
		if err != nil {
			return nil, fmt.Errorf("poolstore: open active flag: %w", err)
		}
		total, err := s.sealer.Open(row.Principal, row.TotalContributed)
		if err != nil {
			return nil, fmt.Errorf("poolstore: open total contributed: %w", err)
		}
		out = append(out, membership.MemberRecord{
			Principal:            row.Principal,
			Commitment:           commitment,
			Active:               active,
			JoinTime:             row.JoinTime,
			TotalContributed:     total,
			LastContributionTime: row.LastContributionTime,
		})
	}
	return out, nil
}

// PutAccount stores a distribution engine account keyed by member.
func (s *BoltStore) PutAccount(acct distribution.Account) error {
	commitment, err := s.sealer.Seal(acct.Commitment)
	if err != nil {
		return fmt.Errorf("poolstore: seal account commitment: %w", err)
	}
	pending, err := s.sealer.Seal(acct.Pending)
	if err != nil {
		return fmt.Errorf("poolstore: seal pending: %w", err)
	}
	received, err := s.sealer.Seal(acct.Received)
	if err != nil {
		return fmt.Errorf("poolstore: seal received: %w", err)
	}
	row := accountRow{
		Member:               acct.Member,
		Commitment:           commitment,
		Pending:              pending,
		Received:             received,
		LastDistributionTime: acct.LastDistributionTime,
		LastCommitmentUpdate: acct.LastCommitmentUpdate,
	}
	data, err := encodeGob(&row)
	if err != nil {
		return fmt.Errorf("poolstore: encode account: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAccounts).Put(acct.Member[:], data)
	})
}

// ListAccounts returns all engine accounts.
func (s *BoltStore) ListAccounts() ([]distribution.Account, error) {
	var rows []accountRow
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAccounts).ForEach(func(k, v []byte) error {
			var row accountRow
			if err := decodeGob(v, &row); err != nil {
				return fmt.Errorf("poolstore: decode account: %w", err)
			}
			rows = append(rows, row)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	out := make([]distribution.Account, 0, len(rows))
	for _, row := range rows {
		commitment, err := s.sealer.Open(row.Member, row.Commitment)
		if err != nil {
			return nil, fmt.Errorf("poolstore: open account commitment: %w", err)
		}
		pending, err := s.sealer.Open(row.Member, row.Pending)
		if err != nil {
			return nil, fmt.Errorf("poolstore: open pending: %w", err)
		}
		received, err := s.sealer.Open(row.Member, row.Received)
		if err != nil {
			return nil, fmt.Errorf("poolstore: open received: %w", err)
		}
		out = append(out, distribution.Account{
			Member:               row.Member,
			Commitment:           commitment,
			Pending:              pending,
			Received:             received,
			LastDistributionTime: row.LastDistributionTime,
			LastCommitmentUpdate: row.LastCommitmentUpdate,
		})
	}
	return out, nil
}

// PutContribution stores a processor record keyed by contributor.
func (s *BoltStore) PutContribution(rec contribution.Record) error {
	row := contributionRow{
		Contributor:     rec.Contributor,
		LastProcessTime: rec.LastProcessTime,
	}
	var err error
	if rec.LastAmount != nil {
		row.LastAmount, err = s.sealer.Seal(rec.LastAmount)
		if err != nil {
			return fmt.Errorf("poolstore: seal last amount: %w", err)
		}
	}
	row.Total, err = s.sealer.Seal(rec.Total)
	if err != nil {
		return fmt.Errorf("poolstore: seal processed total: %w", err)
	}
	data, err := encodeGob(&row)
	if err != nil {
		return fmt.Errorf("poolstore: encode contribution: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketContributions).Put(rec.Contributor[:], data)
	})
}

// ListContributions returns all processor records.
func (s *BoltStore) ListContributions() ([]contribution.Record, error) {
	var rows []contributionRow
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketContributions).ForEach(func(k, v []byte) error {
			var row contributionRow
			if err := decodeGob(v, &row); err != nil {
				return fmt.Errorf("poolstore: decode contribution: %w", err)
			}
			rows = append(rows, row)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	out := make([]contribution.Record, 0, len(rows))
	for _, row := range rows {
		rec := contribution.Record{
			Contributor:     row.Contributor,
			LastProcessTime: row.LastProcessTime,
		}
		if row.LastAmount != nil {
			rec.LastAmount, err = s.sealer.Open(row.Contributor, row.LastAmount)
			if err != nil {
				return nil, fmt.Errorf("poolstore: open last amount: %w", err)
			}
		}
		rec.Total, err = s.sealer.Open(row.Contributor, row.Total)
		if err != nil {
			return nil, fmt.Errorf("poolstore: open processed total: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}
