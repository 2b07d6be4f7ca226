// Package persistence stores completed trade results in BoltDB so a restart
// does not lose the execution history operators audit against.
package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	boltdb "github.com/andrew-solarstorm/bolt-db"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hxuan190/swap-router/internal/domain"
)

const (
	TradesBucket = "trades"

	DefaultDBPath = "./data/swap-router.db"
)

// StoredTrade is the journal record. RecordedAt orders entries; the bolt key
// is the idempotency key so a replayed trade overwrites rather than
// duplicates.
type StoredTrade struct {
	Venue          string `json:"venue,omitempty"`
	Signature      string `json:"signature,omitempty"`
	ReceivedAmount string `json:"receivedAmount,omitempty"`
	Slot           uint64 `json:"slot,omitempty"`
	Simulated      bool   `json:"simulated"`
	Success        bool   `json:"success"`
	Error          string `json:"error,omitempty"`
	IdempotencyKey string `json:"idempotencyKey"`
	RecordedAt     int64  `json:"recordedAt"`
}

type Journal struct {
	db     *boltdb.BoltDatabase
	dbPath string
}

func NewJournal(dbPath string) (*Journal, error) {
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	os.MkdirAll(filepath.Dir(dbPath), 0755) //nolint:errcheck

	db := boltdb.NewBoltDatabase(dbPath)
	if db == nil {
		return nil, fmt.Errorf("failed to open database at %s", dbPath)
	}
	log.Info().Str("path", dbPath).Msg("[journal] opened database")

	return &Journal{db: db, dbPath: dbPath}, nil
}

func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Record persists one trade result. Results without an idempotency key get a
// generated one so nothing is silently dropped.
func (j *Journal) Record(res *domain.TradeResult) error {
	key := res.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	stored := StoredTrade{
		Venue:          res.Venue,
		Signature:      res.Signature,
		ReceivedAmount: res.ReceivedAmount,
		Slot:           res.Slot,
		Simulated:      res.Simulated,
		Success:        res.Success,
		Error:          res.Error,
		IdempotencyKey: key,
		RecordedAt:     time.Now().Unix(),
	}
	data, err := sonic.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal trade: %w", err)
	}
	return j.db.Set(TradesBucket, []byte(key), data)
}

// LoadAll returns every journaled trade keyed by idempotency key.
// Unparseable entries are skipped and counted, not fatal.
func (j *Journal) LoadAll() (map[string]StoredTrade, error) {
	data, err := j.db.List(TradesBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}

	trades := make(map[string]StoredTrade, len(data))
	skipped := 0
	for key, value := range data {
		var stored StoredTrade
		if err := sonic.Unmarshal(value, &stored); err != nil {
			log.Warn().Str("key", key).Err(err).Msg("[journal] failed to unmarshal trade, skipping")
			skipped++
			continue
		}
		trades[key] = stored
	}
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Int("loaded", len(trades)).Msg("[journal] load completed with errors")
	}
	return trades, nil
}
