package domain

// AcquisitionRecord representa os números de aquisição de clientes de um mês
type AcquisitionRecord struct {
	Month           string  `json:"month"` // Mês no formato yyyy-mm
	NewCustomers    int     `json:"newCustomers"`
	TotalLeads      int     `json:"totalLeads"`
	AcquisitionCost float64 `json:"acquisitionCost"`
}

// AcquisitionRate retorna o percentual de leads convertidos em clientes no mês
func (r AcquisitionRecord) AcquisitionRate() float64 {
	if r.TotalLeads > 0 {
		return float64(r.NewCustomers) / float64(r.TotalLeads) * 100
	}
	return 0
}

// CostPerAcquisition retorna o custo médio por cliente adquirido no mês
func (r AcquisitionRecord) CostPerAcquisition() float64 {
	if r.NewCustomers > 0 {
		return r.AcquisitionCost / float64(r.NewCustomers)
	}
	return 0
}

// AcquisitionRow é uma linha da tabela de aquisição com as métricas derivadas
type AcquisitionRow struct {
	AcquisitionRecord
	Position           int     `json:"position"`
	AcquisitionRate    float64 `json:"acquisitionRate"`
	CostPerAcquisition float64 `json:"costPerAcquisition"`
}

func NewAcquisitionRow(position int, record AcquisitionRecord) AcquisitionRow {
	return AcquisitionRow{
		AcquisitionRecord:  record,
		Position:           position,
		AcquisitionRate:    record.AcquisitionRate(),
		CostPerAcquisition: record.CostPerAcquisition(),
	}
}
