package uniswap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractWalletAddress(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{
			name:   "bare address",
			text:   "0x1234567890123456789012345678901234567890",
			want:   "0x1234567890123456789012345678901234567890",
			wantOK: true,
		},
		{
			name:   "address inside sentence keeps case",
			text:   "Check my LP positions: 0xAbCdEf1234567890abcdef1234567890ABCDEF12 please",
			want:   "0xAbCdEf1234567890abcdef1234567890ABCDEF12",
			wantOK: true,
		},
		{
			name:   "first of several addresses",
			text:   "0x1111111111111111111111111111111111111111 and 0x2222222222222222222222222222222222222222",
			want:   "0x1111111111111111111111111111111111111111",
			wantOK: true,
		},
		{
			name:   "longer hex run yields its first 40 digits",
			text:   "0x1234567890123456789012345678901234567890ff",
			want:   "0x1234567890123456789012345678901234567890",
			wantOK: true,
		},
		{
			name: "too short",
			text: "0x12345678901234567890",
		},
		{
			name: "non hex digits",
			text: "0xg234567890123456789012345678901234567890",
		},
		{
			name: "ens name",
			text: "vitalik.eth",
		},
		{
			name: "empty",
			text: "",
		},
		{
			name: "uppercase prefix is not matched",
			text: "0X1234567890123456789012345678901234567890",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractWalletAddress(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
