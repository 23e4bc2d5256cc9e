package repository

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/storefront/backend/internal/model"
	bolt "go.etcd.io/bbolt"
)

// OpenBolt opens (or creates) the bbolt database at path.
func OpenBolt(path string) (*bolt.DB, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt store: open %s: %w", path, err)
	}
	return db, nil
}

// BoltRecordRepository keeps one kind of record in its own bucket. Keys are
// the bucket sequence encoded big-endian, so cursor order is arrival order.
type BoltRecordRepository struct {
	db     *bolt.DB
	bucket []byte
}

// NewBoltRecordRepository creates the bucket for kind if needed.
func NewBoltRecordRepository(db *bolt.DB, kind model.Kind) (*BoltRecordRepository, error) {
	bucket := []byte(kind)
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		return nil, fmt.Errorf("bolt store: create bucket %s: %w", kind, err)
	}
	return &BoltRecordRepository{db: db, bucket: bucket}, nil
}

// Ensure BoltRecordRepository implements RecordRepository at compile time.
var _ RecordRepository = (*BoltRecordRepository)(nil)

// Append stores rec under the bucket's next sequence number.
func (r *BoltRecordRepository) Append(_ context.Context, rec *model.Record) error {
	body, err := rec.MarshalJSON()
	if err != nil {
		return fmt.Errorf("bolt store: encode record: %w", err)
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(r.bucket)
		if b == nil {
			return fmt.Errorf("bolt store: bucket %s missing", r.bucket)
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(sequenceKey(seq), body)
	})
}

// Ping checks that the bucket is readable.
func (r *BoltRecordRepository) Ping(_ context.Context) error {
	return r.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(r.bucket) == nil {
			return fmt.Errorf("%w: bucket %s missing", ErrStoreUnavailable, r.bucket)
		}
		return nil
	})
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
