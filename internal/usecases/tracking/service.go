package tracking

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/customer-tracker-api/infrastructure/repository"
	"github.com/vfg2006/customer-tracker-api/internal/domain"
	"github.com/vfg2006/customer-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/customer-tracker-api/pkg/utils"
)

// Chaves do armazenamento local
const (
	AcquisitionDataKey = "acquisitionData"
	ChurnDataKey       = "churnData"
)

type pendingOp int

const (
	pendingWrite pendingOp = iota + 1
	pendingRemove
)

// Service mantém as coleções de aquisição e churn ordenadas por mês
// e grava a coleção alterada no repositório a cada escrita
type Service struct {
	mu           sync.RWMutex
	repo         repository.KeyValueRepository
	acquisitions []domain.AcquisitionRecord
	churns       []domain.ChurnRecord
	pending      map[string]pendingOp
}

func NewService(repo repository.KeyValueRepository) Tracker {
	return &Service{
		repo:         repo,
		acquisitions: make([]domain.AcquisitionRecord, 0),
		churns:       make([]domain.ChurnRecord, 0),
		pending:      make(map[string]pendingOp),
	}
}

func (s *Service) UpsertAcquisition(ctx context.Context, record domain.AcquisitionRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := false
	for i := range s.acquisitions {
		if s.acquisitions[i].Month == record.Month {
			s.acquisitions[i] = record
			updated = true
			break
		}
	}

	if !updated {
		s.acquisitions = append(s.acquisitions, record)
	}

	sortAcquisitions(s.acquisitions)

	logrus.WithFields(logrus.Fields{
		"month":   record.Month,
		"updated": updated,
		"records": len(s.acquisitions),
	}).Debug("tracking: registro de aquisição salvo em memória")

	return updated, s.persistLocked(ctx, AcquisitionDataKey)
}

func (s *Service) UpsertChurn(ctx context.Context, record domain.ChurnRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := false
	for i := range s.churns {
		if s.churns[i].Month == record.Month {
			s.churns[i] = record
			updated = true
			break
		}
	}

	if !updated {
		s.churns = append(s.churns, record)
	}

	sortChurns(s.churns)

	logrus.WithFields(logrus.Fields{
		"month":   record.Month,
		"updated": updated,
		"records": len(s.churns),
	}).Debug("tracking: registro de churn salvo em memória")

	return updated, s.persistLocked(ctx, ChurnDataKey)
}

func (s *Service) DeleteAcquisitionAt(ctx context.Context, position int) (domain.AcquisitionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if position < 0 || position >= len(s.acquisitions) {
		return domain.AcquisitionRecord{}, outOfRange(AcquisitionDataKey, position, len(s.acquisitions))
	}

	removed := s.acquisitions[position]
	s.acquisitions = append(s.acquisitions[:position], s.acquisitions[position+1:]...)

	return removed, s.persistLocked(ctx, AcquisitionDataKey)
}

func (s *Service) DeleteChurnAt(ctx context.Context, position int) (domain.ChurnRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if position < 0 || position >= len(s.churns) {
		return domain.ChurnRecord{}, outOfRange(ChurnDataKey, position, len(s.churns))
	}

	removed := s.churns[position]
	s.churns = append(s.churns[:position], s.churns[position+1:]...)

	return removed, s.persistLocked(ctx, ChurnDataKey)
}

func (s *Service) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.acquisitions = make([]domain.AcquisitionRecord, 0)
	s.churns = make([]domain.ChurnRecord, 0)

	logrus.Info("tracking: todas as coleções foram esvaziadas")

	var firstErr error
	for _, key := range []string{AcquisitionDataKey, ChurnDataKey} {
		if err := s.removeLocked(ctx, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (s *Service) Acquisitions() []domain.AcquisitionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.AcquisitionRecord, len(s.acquisitions))
	copy(records, s.acquisitions)
	return records
}

func (s *Service) Churns() []domain.ChurnRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.ChurnRecord, len(s.churns))
	copy(records, s.churns)
	return records
}

func (s *Service) AcquisitionRows() []domain.AcquisitionRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.AcquisitionRow, 0, len(s.acquisitions))
	for i, record := range s.acquisitions {
		rows = append(rows, domain.NewAcquisitionRow(i, record))
	}
	return rows
}

func (s *Service) ChurnRows() []domain.ChurnRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.ChurnRow, 0, len(s.churns))
	for i, record := range s.churns {
		rows = append(rows, domain.NewChurnRow(i, record))
	}
	return rows
}

func (s *Service) Summary() domain.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := domain.Summary{}

	var rateSum, costSum float64
	for _, record := range s.acquisitions {
		summary.TotalAcquired += record.NewCustomers
		rateSum += record.AcquisitionRate()
		costSum += record.CostPerAcquisition()
	}

	if n := len(s.acquisitions); n > 0 {
		summary.AverageAcquisitionRate = rateSum / float64(n)
		summary.AverageCostPerAcquisition = costSum / float64(n)
	}

	var churnSum float64
	for _, record := range s.churns {
		churnSum += record.ChurnRate()
	}

	if n := len(s.churns); n > 0 {
		summary.AverageChurnRate = churnSum / float64(n)
	}

	return summary
}

func (s *Service) AlignedSeries() domain.AlignedSeries {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.alignedSeriesLocked()
}

func (s *Service) alignedSeriesLocked() domain.AlignedSeries {
	newCustomersByMonth := make(map[string]int, len(s.acquisitions))
	churnedByMonth := make(map[string]int, len(s.churns))
	months := make([]string, 0, len(s.acquisitions)+len(s.churns))

	for _, record := range s.acquisitions {
		newCustomersByMonth[record.Month] = record.NewCustomers
		months = append(months, record.Month)
	}

	for _, record := range s.churns {
		if _, seen := newCustomersByMonth[record.Month]; !seen {
			months = append(months, record.Month)
		}
		churnedByMonth[record.Month] = record.ChurnedCustomers
	}

	sort.Strings(months)

	series := domain.AlignedSeries{
		Months:           months,
		NewCustomers:     make([]int, len(months)),
		ChurnedCustomers: make([]int, len(months)),
	}

	for i, month := range months {
		series.NewCustomers[i] = newCustomersByMonth[month]
		series.ChurnedCustomers[i] = churnedByMonth[month]
	}

	return series
}

func (s *Service) AcquisitionTrend() domain.TrendSeries {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trend := newTrendSeries(len(s.acquisitions))
	for _, record := range s.acquisitions {
		trend.Months = append(trend.Months, record.Month)
		trend.Labels = append(trend.Labels, utils.FormatMonth(record.Month))
		trend.Values = append(trend.Values, float64(record.NewCustomers))
	}
	return trend
}

func (s *Service) ChurnTrend() domain.TrendSeries {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trend := newTrendSeries(len(s.churns))
	for _, record := range s.churns {
		trend.Months = append(trend.Months, record.Month)
		trend.Labels = append(trend.Labels, utils.FormatMonth(record.Month))
		trend.Values = append(trend.Values, record.ChurnRate())
	}
	return trend
}

func (s *Service) Comparison() domain.ComparisonChart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	series := s.alignedSeriesLocked()
	labels := make([]string, len(series.Months))
	for i, month := range series.Months {
		labels[i] = utils.FormatMonth(month)
	}

	return domain.ComparisonChart{
		Labels:        labels,
		AlignedSeries: series,
	}
}

func newTrendSeries(size int) domain.TrendSeries {
	return domain.TrendSeries{
		Labels: make([]string, 0, size),
		Months: make([]string, 0, size),
		Values: make([]float64, 0, size),
	}
}

func sortAcquisitions(records []domain.AcquisitionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Month < records[j].Month
	})
}

func sortChurns(records []domain.ChurnRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Month < records[j].Month
	})
}

func outOfRange(key string, position, size int) *TrackingError {
	return NewTrackingError(
		ErrOutOfRange,
		apiErrors.ErrPositionOutOfRange,
		key,
		fmt.Sprintf("posição %d inexistente (coleção com %d registros)", position, size),
	)
}
