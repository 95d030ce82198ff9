package domain

// Summary reúne os indicadores exibidos no topo do dashboard.
// As médias são calculadas registro a registro, sem ponderação.
type Summary struct {
	TotalAcquired             int     `json:"totalAcquired"`
	AverageAcquisitionRate    float64 `json:"avgAcquisitionRate"`
	AverageCostPerAcquisition float64 `json:"avgCostPerAcquisition"`
	AverageChurnRate          float64 `json:"avgChurnRate"`
}

// AlignedSeries relaciona, mês a mês, clientes adquiridos e clientes perdidos
// na união dos meses presentes nas duas coleções
type AlignedSeries struct {
	Months           []string `json:"months"`
	NewCustomers     []int    `json:"newCustomers"`
	ChurnedCustomers []int    `json:"churnedCustomers"`
}

// TrendSeries é uma série simples para os gráficos de linha
type TrendSeries struct {
	Labels []string  `json:"labels"` // Meses formatados (ex: Jan 2024)
	Months []string  `json:"months"`
	Values []float64 `json:"values"`
}

// ComparisonChart alimenta o gráfico de barras de aquisição x churn
type ComparisonChart struct {
	Labels []string `json:"labels"`
	AlignedSeries
}
