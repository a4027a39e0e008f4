package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisualRTL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "пустая строка", in: "", want: ""},
		{name: "латиница не меняется", in: "Intel", want: "Intel"},
		{name: "иврит переворачивается", in: "שלום", want: "םולש"},
		{name: "пробел остаётся внутри сегмента", in: "שלום עולם", want: "םלוע םולש"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, visualRTL(tt.in))
		})
	}
}

func TestIsHebrew(t *testing.T) {
	assert.True(t, isHebrew('ש'))
	assert.False(t, isHebrew('a'))
	assert.False(t, isHebrew('7'))
}
