package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOffsetRequest(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		size      string
		want      OffsetRequest
		offset    int
		isLimited bool
	}{
		{name: "no params means unlimited", want: OffsetRequest{Page: 1, Size: 0}},
		{name: "explicit page and size", page: "3", size: "10", want: OffsetRequest{Page: 3, Size: 10}, offset: 20, isLimited: true},
		{name: "garbage size falls back", page: "x", size: "y", want: OffsetRequest{Page: 1, Size: PageDefaultSize}, isLimited: true},
		{name: "size capped", size: "100000", want: OffsetRequest{Page: 1, Size: PageMaxSize}, isLimited: true},
		{name: "page capped", page: "9223372036854775807", size: "500", want: OffsetRequest{Page: PageMaxNumber, Size: PageMaxSize}, offset: (PageMaxNumber - 1) * PageMaxSize, isLimited: true},
		{name: "negative size", size: "-2", want: OffsetRequest{Page: 1, Size: PageDefaultSize}, isLimited: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOffsetRequest(tt.page, tt.size)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.offset, got.Offset())
			assert.Equal(t, tt.isLimited, got.Limited())
		})
	}
}
