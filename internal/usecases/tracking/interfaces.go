package tracking

import (
	"context"

	"github.com/vfg2006/customer-tracker-api/internal/domain"
)

// MetricsReader define a leitura das coleções e das métricas derivadas
type MetricsReader interface {
	// Acquisitions retorna uma cópia dos registros de aquisição em ordem de mês
	Acquisitions() []domain.AcquisitionRecord

	// Churns retorna uma cópia dos registros de churn em ordem de mês
	Churns() []domain.ChurnRecord

	// AcquisitionRows retorna os registros de aquisição com taxa e custo por cliente
	AcquisitionRows() []domain.AcquisitionRow

	// ChurnRows retorna os registros de churn com a taxa de churn
	ChurnRows() []domain.ChurnRow

	// Summary calcula os indicadores agregados do dashboard
	Summary() domain.Summary

	// AlignedSeries combina aquisição e churn na união dos meses das duas coleções
	AlignedSeries() domain.AlignedSeries

	// AcquisitionTrend retorna a série de novos clientes por mês
	AcquisitionTrend() domain.TrendSeries

	// ChurnTrend retorna a série da taxa de churn por mês
	ChurnTrend() domain.TrendSeries

	// Comparison retorna a série alinhada com os rótulos dos meses
	Comparison() domain.ComparisonChart
}

// MetricsWriter define as operações que alteram as coleções.
// Cada escrita persiste a coleção afetada antes de retornar.
type MetricsWriter interface {
	// UpsertAcquisition insere ou substitui o registro do mês; retorna true quando substituiu
	UpsertAcquisition(ctx context.Context, record domain.AcquisitionRecord) (bool, error)

	// UpsertChurn insere ou substitui o registro de churn do mês
	UpsertChurn(ctx context.Context, record domain.ChurnRecord) (bool, error)

	// DeleteAcquisitionAt remove o registro na posição informada (base 0, ordem atual)
	DeleteAcquisitionAt(ctx context.Context, position int) (domain.AcquisitionRecord, error)

	// DeleteChurnAt remove o registro de churn na posição informada
	DeleteChurnAt(ctx context.Context, position int) (domain.ChurnRecord, error)

	// ClearAll esvazia as duas coleções e remove as chaves persistidas
	ClearAll(ctx context.Context) error
}

// Tracker é a interface completa do armazenamento de métricas mensais
type Tracker interface {
	MetricsReader
	MetricsWriter

	// Load carrega as coleções persistidas ou semeia os dados de exemplo
	Load(ctx context.Context) error

	// Flush tenta novamente as gravações que falharam
	Flush(ctx context.Context) error

	// PendingPersistence lista as chaves com gravação pendente
	PendingPersistence() []string
}
