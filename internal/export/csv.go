// Package export gera os arquivos CSV baixados pelo dashboard
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/customer-tracker-api/internal/domain"
)

const (
	AcquisitionFilename = "acquisition_data.csv"
	ChurnFilename       = "churn_data.csv"
)

var ErrNothingToExport = errors.New("no data to export")

var (
	acquisitionHeader = []string{"Month", "New Customers", "Total Leads", "Acquisition Cost", "Acquisition Rate (%)", "Cost per Customer ($)"}
	churnHeader       = []string{"Month", "Total Customers Start", "Churned Customers", "Churn Rate (%)"}
)

func WriteAcquisitionCSV(w io.Writer, rows []domain.AcquisitionRow) error {
	if len(rows) == 0 {
		return ErrNothingToExport
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(acquisitionHeader); err != nil {
		return fmt.Errorf("erro ao escrever cabeçalho: %w", err)
	}

	for _, row := range rows {
		err := writer.Write([]string{
			row.Month,
			strconv.Itoa(row.NewCustomers),
			strconv.Itoa(row.TotalLeads),
			decimal.NewFromFloat(row.AcquisitionCost).String(),
			fixed(row.AcquisitionRate, 1),
			fixed(row.CostPerAcquisition, 2),
		})
		if err != nil {
			return fmt.Errorf("erro ao escrever mês %s: %w", row.Month, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func WriteChurnCSV(w io.Writer, rows []domain.ChurnRow) error {
	if len(rows) == 0 {
		return ErrNothingToExport
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(churnHeader); err != nil {
		return fmt.Errorf("erro ao escrever cabeçalho: %w", err)
	}

	for _, row := range rows {
		err := writer.Write([]string{
			row.Month,
			strconv.Itoa(row.TotalCustomersStart),
			strconv.Itoa(row.ChurnedCustomers),
			fixed(row.ChurnRate, 1),
		})
		if err != nil {
			return fmt.Errorf("erro ao escrever mês %s: %w", row.Month, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// exactDigits basta para a expansão decimal exata de qualquer float64
const exactDigits = 1074

// fixed arredonda o valor binário exato para o mais próximo; empates exatos
// sobem. 201/200 vira "1.00" porque o float guardado é 1.00499...
func fixed(value float64, places int32) string {
	exact, err := decimal.NewFromString(strconv.FormatFloat(value, 'f', exactDigits, 64))
	if err != nil {
		return decimal.NewFromFloat(value).StringFixed(places)
	}
	return exact.StringFixed(places)
}
