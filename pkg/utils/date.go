package utils

import (
	"fmt"
	"time"
)

// MonthLayout é o formato dos identificadores de mês (yyyy-mm)
const MonthLayout = "2006-01"

const monthLabelLayout = "Jan 2006"

// ParseMonth valida um identificador de mês no formato yyyy-mm
func ParseMonth(month string) (time.Time, error) {
	if len(month) != len(MonthLayout) {
		return time.Time{}, fmt.Errorf("mês %q fora do formato yyyy-mm", month)
	}

	date, err := time.Parse(MonthLayout, month)
	if err != nil {
		return time.Time{}, fmt.Errorf("mês %q inválido: %w", month, err)
	}

	return date, nil
}

// FormatMonth converte 2024-01 em "Jan 2024" para os rótulos dos gráficos.
// Valores inválidos são devolvidos sem alteração.
func FormatMonth(month string) string {
	date, err := ParseMonth(month)
	if err != nil {
		return month
	}

	return date.Format(monthLabelLayout)
}
