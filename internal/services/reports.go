package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/imodoiepale/kra-invoice-api/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const reportKeyPrefix = "report:"

// ReportStore retains completed batch reports for later export. Reports are
// immutable values keyed by ID; the store never serves verification lookups,
// it only holds finished runs for the export routes. Redis is used when
// available, with an in-memory fallback so the service degrades instead of
// failing when Redis is down.
type ReportStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger

	memReports map[string]reportItem
	memMutex   sync.RWMutex
}

type reportItem struct {
	payload   []byte
	expiresAt time.Time
}

// NewReportStore creates a new report store
func NewReportStore(client *redis.Client, ttl time.Duration, logger *logrus.Logger) ReportStoreInterface {
	return &ReportStore{
		client:     client,
		ttl:        ttl,
		logger:     logger,
		memReports: make(map[string]reportItem),
	}
}

// Save stores a completed report under its ID
func (s *ReportStore) Save(ctx context.Context, report *models.BatchReport) error {
	if report == nil || report.ID == "" {
		return fmt.Errorf("report has no ID")
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	key := reportKeyPrefix + report.ID
	if s.client != nil {
		err := s.client.Set(ctx, key, payload, s.ttl).Err()
		if err == nil {
			s.logger.WithField("report_id", report.ID).Debug("Report saved (Redis)")
			return nil
		}
		s.logger.WithFields(logrus.Fields{
			"report_id": report.ID,
			"error":     err.Error(),
		}).Warn("Redis save error, falling back to memory store")
	}

	s.memMutex.Lock()
	s.memReports[report.ID] = reportItem{
		payload:   payload,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.memMutex.Unlock()

	s.logger.WithField("report_id", report.ID).Debug("Report saved (memory)")
	return nil
}

// Get retrieves a stored report by ID
func (s *ReportStore) Get(ctx context.Context, id string) (*models.BatchReport, error) {
	if s.client != nil {
		payload, err := s.client.Get(ctx, reportKeyPrefix+id).Bytes()
		if err == nil {
			return decodeReport(payload)
		}
		if err != redis.Nil {
			s.logger.WithFields(logrus.Fields{
				"report_id": id,
				"error":     err.Error(),
			}).Warn("Redis get error, checking memory store")
		}
	}

	s.memMutex.RLock()
	item, exists := s.memReports[id]
	s.memMutex.RUnlock()

	if !exists {
		return nil, ErrReportNotFound
	}
	if time.Now().After(item.expiresAt) {
		s.memMutex.Lock()
		delete(s.memReports, id)
		s.memMutex.Unlock()
		return nil, ErrReportNotFound
	}

	return decodeReport(item.payload)
}

// List returns the IDs of currently retained reports
func (s *ReportStore) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0)

	if s.client != nil {
		keys, err := s.client.Keys(ctx, reportKeyPrefix+"*").Result()
		if err == nil {
			for _, key := range keys {
				ids = append(ids, strings.TrimPrefix(key, reportKeyPrefix))
			}
			return ids, nil
		}
		s.logger.WithField("error", err.Error()).Warn("Redis list error, listing memory store")
	}

	now := time.Now()
	s.memMutex.RLock()
	for id, item := range s.memReports {
		if now.Before(item.expiresAt) {
			ids = append(ids, id)
		}
	}
	s.memMutex.RUnlock()

	return ids, nil
}

// Health returns report store health status
func (s *ReportStore) Health() map[string]interface{} {
	health := make(map[string]interface{})

	if s.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx).Err(); err != nil {
			health["redis"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
		} else {
			health["redis"] = map[string]interface{}{
				"status": "healthy",
			}
		}
	} else {
		health["redis"] = map[string]interface{}{
			"status": "disabled",
		}
	}

	s.memMutex.RLock()
	memSize := len(s.memReports)
	s.memMutex.RUnlock()

	health["memory"] = map[string]interface{}{
		"status": "healthy",
		"size":   memSize,
	}

	return health
}

func decodeReport(payload []byte) (*models.BatchReport, error) {
	var report models.BatchReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to decode stored report: %w", err)
	}
	return &report, nil
}
