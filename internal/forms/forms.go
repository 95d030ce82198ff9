// Package forms converte os campos enviados pelos formulários do dashboard
// em registros do domínio, rejeitando entradas malformadas antes de chegar ao store.
package forms

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vfg2006/customer-tracker-api/internal/domain"
	"github.com/vfg2006/customer-tracker-api/pkg/utils"
)

// Nomes dos campos, iguais aos do JSON
const (
	FieldMonth               = "month"
	FieldNewCustomers        = "newCustomers"
	FieldTotalLeads          = "totalLeads"
	FieldAcquisitionCost     = "acquisitionCost"
	FieldTotalCustomersStart = "totalCustomersStart"
	FieldChurnedCustomers    = "churnedCustomers"
)

var ErrMalformedInput = errors.New("malformed input")

// Values é satisfeito por url.Values
type Values interface {
	Get(key string) string
}

// FieldError indica o campo rejeitado e o motivo
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("campo %s inválido (%q): %s", e.Field, e.Value, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrMalformedInput
}

func ParseAcquisition(values Values) (domain.AcquisitionRecord, error) {
	month, err := parseMonth(values)
	if err != nil {
		return domain.AcquisitionRecord{}, err
	}

	newCustomers, err := parseCount(values, FieldNewCustomers)
	if err != nil {
		return domain.AcquisitionRecord{}, err
	}

	totalLeads, err := parseCount(values, FieldTotalLeads)
	if err != nil {
		return domain.AcquisitionRecord{}, err
	}

	cost, err := parseMoney(values, FieldAcquisitionCost)
	if err != nil {
		return domain.AcquisitionRecord{}, err
	}

	return domain.AcquisitionRecord{
		Month:           month,
		NewCustomers:    newCustomers,
		TotalLeads:      totalLeads,
		AcquisitionCost: cost,
	}, nil
}

func ParseChurn(values Values) (domain.ChurnRecord, error) {
	month, err := parseMonth(values)
	if err != nil {
		return domain.ChurnRecord{}, err
	}

	totalStart, err := parseCount(values, FieldTotalCustomersStart)
	if err != nil {
		return domain.ChurnRecord{}, err
	}

	churned, err := parseCount(values, FieldChurnedCustomers)
	if err != nil {
		return domain.ChurnRecord{}, err
	}

	return domain.ChurnRecord{
		Month:               month,
		TotalCustomersStart: totalStart,
		ChurnedCustomers:    churned,
	}, nil
}

func parseMonth(values Values) (string, error) {
	month := strings.TrimSpace(values.Get(FieldMonth))
	if month == "" {
		return "", &FieldError{Field: FieldMonth, Reason: "obrigatório"}
	}

	if _, err := utils.ParseMonth(month); err != nil {
		return "", &FieldError{Field: FieldMonth, Value: month, Reason: "use o formato yyyy-mm"}
	}

	return month, nil
}

func parseCount(values Values, field string) (int, error) {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		return 0, &FieldError{Field: field, Reason: "obrigatório"}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &FieldError{Field: field, Value: raw, Reason: "deve ser um número inteiro"}
	}

	if n < 0 {
		return 0, &FieldError{Field: field, Value: raw, Reason: "não pode ser negativo"}
	}

	return n, nil
}

func parseMoney(values Values, field string) (float64, error) {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		return 0, &FieldError{Field: field, Reason: "obrigatório"}
	}

	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, &FieldError{Field: field, Value: raw, Reason: "deve ser um valor numérico"}
	}

	if amount < 0 {
		return 0, &FieldError{Field: field, Value: raw, Reason: "não pode ser negativo"}
	}

	return amount, nil
}
