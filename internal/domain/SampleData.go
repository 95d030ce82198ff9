package domain

// SampleAcquisitionRecords retorna os dados de exemplo carregados no primeiro acesso
func SampleAcquisitionRecords() []AcquisitionRecord {
	return []AcquisitionRecord{
		{Month: "2024-01", NewCustomers: 120, TotalLeads: 387, AcquisitionCost: 5225},
		{Month: "2024-02", NewCustomers: 100, TotalLeads: 345, AcquisitionCost: 4341},
		{Month: "2024-03", NewCustomers: 133, TotalLeads: 596, AcquisitionCost: 5138},
		{Month: "2024-04", NewCustomers: 132, TotalLeads: 507, AcquisitionCost: 3398},
		{Month: "2024-05", NewCustomers: 113, TotalLeads: 392, AcquisitionCost: 4526},
		{Month: "2024-06", NewCustomers: 145, TotalLeads: 521, AcquisitionCost: 6102},
	}
}

// SampleChurnRecords retorna os dados de churn de exemplo
func SampleChurnRecords() []ChurnRecord {
	return []ChurnRecord{
		{Month: "2024-01", TotalCustomersStart: 120, ChurnedCustomers: 7},
		{Month: "2024-02", TotalCustomersStart: 213, ChurnedCustomers: 11},
		{Month: "2024-03", TotalCustomersStart: 335, ChurnedCustomers: 26},
		{Month: "2024-04", TotalCustomersStart: 441, ChurnedCustomers: 18},
		{Month: "2024-05", TotalCustomersStart: 536, ChurnedCustomers: 28},
		{Month: "2024-06", TotalCustomersStart: 653, ChurnedCustomers: 32},
	}
}
