package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyJson(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "Mapa", in: map[string]int{"total": 743}, want: "{\n\t\"total\": 743\n}"},
		{name: "JSON já serializado", in: []byte(`{"a":1}`), want: "{\n\t\"a\": 1\n}"},
		{
			name: "Struct aninhada",
			in: struct {
				Month string `json:"month"`
				Rates []int  `json:"rates"`
			}{Month: "2024-01", Rates: []int{31}},
			want: "{\n\t\"month\": \"2024-01\",\n\t\"rates\": [\n\t\t31\n\t]\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := PrettyJson(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestPrettyJson_InvalidRawJSON(t *testing.T) {
	_, err := PrettyJson([]byte(`{"a":`))
	assert.Error(t, err)
}
