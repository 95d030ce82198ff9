package domain

// ChurnRecord representa a base de clientes e as perdas de um mês
type ChurnRecord struct {
	Month               string `json:"month"` // Mês no formato yyyy-mm
	TotalCustomersStart int    `json:"totalCustomersStart"`
	ChurnedCustomers    int    `json:"churnedCustomers"`
}

// ChurnRate retorna o percentual da base inicial perdido durante o mês
func (r ChurnRecord) ChurnRate() float64 {
	if r.TotalCustomersStart > 0 {
		return float64(r.ChurnedCustomers) / float64(r.TotalCustomersStart) * 100
	}
	return 0
}

// ChurnRow é uma linha da tabela de churn com a taxa calculada
type ChurnRow struct {
	ChurnRecord
	Position  int     `json:"position"`
	ChurnRate float64 `json:"churnRate"`
}

func NewChurnRow(position int, record ChurnRecord) ChurnRow {
	return ChurnRow{
		ChurnRecord: record,
		Position:    position,
		ChurnRate:   record.ChurnRate(),
	}
}
