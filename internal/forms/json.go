package forms

import (
	"fmt"
	"io"
	"net/url"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// ValuesFromJSON achata um objeto JSON em url.Values. Números e strings
// numéricas chegam ao parser como texto, igual a um formulário.
func ValuesFromJSON(r io.Reader) (url.Values, error) {
	var body map[string]any
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: corpo JSON inválido: %v", ErrMalformedInput, err)
	}

	values := url.Values{}
	for field, value := range body {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			values.Set(field, v)
		case fmt.Stringer:
			// json.Number
			values.Set(field, v.String())
		case float64:
			values.Set(field, strconv.FormatFloat(v, 'f', -1, 64))
		case bool:
			values.Set(field, fmt.Sprint(v))
		default:
			return nil, &FieldError{Field: field, Reason: "deve ser um valor simples"}
		}
	}

	return values, nil
}
