package employee

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const DefaultCacheTTL = 2 * time.Minute

type listFetcher func(ctx context.Context) []Employee

// snapshotCache adalah read-through cache untuk daftar employee lengkap.
// Satu mutex menjaga urutan cek-TTL -> fetch -> simpan sebagai satu region
// atomik; invalidasi memakai lock yang sama, sehingga refresh yang berjalan
// tidak pernah menimpa invalidasi yang datang belakangan.
type snapshotCache struct {
	clock  clockwork.Clock
	ttl    time.Duration
	fetch  listFetcher
	logger *zap.Logger

	mu        sync.Mutex
	employees []Employee
	fetchedAt time.Time
	valid     bool
}

func newSnapshotCache(fetch listFetcher, clock clockwork.Clock, ttl time.Duration, logger *zap.Logger) *snapshotCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &snapshotCache{
		clock:  clock,
		ttl:    ttl,
		fetch:  fetch,
		logger: logger,
	}
}

// Get mengembalikan snapshot. Saat kosong atau kedaluwarsa, fetch dari
// upstream dilakukan di bawah lock dan hasil apa pun (termasuk kosong)
// disimpan sebagai snapshot valid dengan timestamp baru.
func (sc *snapshotCache) Get(ctx context.Context) []Employee {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.valid && sc.clock.Since(sc.fetchedAt) < sc.ttl {
		sc.logger.Debug("serving cached employee list",
			zap.Int("count", len(sc.employees)),
		)
		return copyEmployees(sc.employees)
	}

	sc.logger.Debug("cache empty or expired, fetching employees from upstream")
	fresh := sc.fetch(ctx)
	sc.employees = copyEmployees(fresh)
	sc.fetchedAt = sc.clock.Now()
	sc.valid = true
	sc.logger.Debug("employee snapshot refreshed", zap.Int("count", len(fresh)))

	return copyEmployees(sc.employees)
}

// Invalidate membuang snapshot secara sinkron. Read berikutnya, sesegera
// apa pun, pasti fetch ulang.
func (sc *snapshotCache) Invalidate() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.logger.Debug("invalidating employee snapshot")
	sc.employees = nil
	sc.valid = false
}

// copyEmployees: pemanggil tidak boleh bisa memutasi snapshot bersama
func copyEmployees(src []Employee) []Employee {
	dst := make([]Employee, len(src))
	copy(dst, src)
	return dst
}
