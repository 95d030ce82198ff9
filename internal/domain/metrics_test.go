package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcquisitionRecord_AcquisitionRate(t *testing.T) {
	tests := []struct {
		name     string
		record   AcquisitionRecord
		expected float64
	}{
		{
			name:     "Sem leads - taxa zero",
			record:   AcquisitionRecord{Month: "2024-01", NewCustomers: 10, TotalLeads: 0},
			expected: 0,
		},
		{
			name:     "Metade dos leads convertidos",
			record:   AcquisitionRecord{Month: "2024-01", NewCustomers: 50, TotalLeads: 100},
			expected: 50,
		},
		{
			name:     "Nenhum cliente novo",
			record:   AcquisitionRecord{Month: "2024-01", NewCustomers: 0, TotalLeads: 300},
			expected: 0,
		},
		{
			name:     "Dados de exemplo de janeiro",
			record:   AcquisitionRecord{Month: "2024-01", NewCustomers: 120, TotalLeads: 387},
			expected: float64(120) / float64(387) * 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.AcquisitionRate())
		})
	}
}

func TestAcquisitionRecord_CostPerAcquisition(t *testing.T) {
	tests := []struct {
		name     string
		record   AcquisitionRecord
		expected float64
	}{
		{
			name:     "Sem clientes novos - custo zero",
			record:   AcquisitionRecord{NewCustomers: 0, AcquisitionCost: 1000},
			expected: 0,
		},
		{
			name:     "Custo dividido pelos clientes",
			record:   AcquisitionRecord{NewCustomers: 50, AcquisitionCost: 1000},
			expected: 20,
		},
		{
			name:     "Custo fracionado",
			record:   AcquisitionRecord{NewCustomers: 120, AcquisitionCost: 5225},
			expected: 5225.0 / 120.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.CostPerAcquisition())
		})
	}
}

func TestChurnRecord_ChurnRate(t *testing.T) {
	tests := []struct {
		name     string
		record   ChurnRecord
		expected float64
	}{
		{
			name:     "Base inicial vazia - taxa zero",
			record:   ChurnRecord{TotalCustomersStart: 0, ChurnedCustomers: 3},
			expected: 0,
		},
		{
			name:     "Dez por cento de churn",
			record:   ChurnRecord{TotalCustomersStart: 200, ChurnedCustomers: 20},
			expected: 10,
		},
		{
			name:     "Dados de exemplo de janeiro",
			record:   ChurnRecord{TotalCustomersStart: 120, ChurnedCustomers: 7},
			expected: float64(7) / float64(120) * 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.ChurnRate())
		})
	}
}

func TestNewAcquisitionRow(t *testing.T) {
	row := NewAcquisitionRow(2, AcquisitionRecord{Month: "2024-03", NewCustomers: 50, TotalLeads: 100, AcquisitionCost: 1000})

	assert.Equal(t, 2, row.Position)
	assert.Equal(t, "2024-03", row.Month)
	assert.Equal(t, 50.0, row.AcquisitionRate)
	assert.Equal(t, 20.0, row.CostPerAcquisition)
}

func TestSampleData(t *testing.T) {
	acquisitions := SampleAcquisitionRecords()
	churns := SampleChurnRecords()

	assert.Len(t, acquisitions, 6)
	assert.Len(t, churns, 6)

	// Cada chamada deve devolver uma cópia independente
	acquisitions[0].NewCustomers = 0
	assert.Equal(t, 120, SampleAcquisitionRecords()[0].NewCustomers)
}
