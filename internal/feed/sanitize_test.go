package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanBody(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "plain text passes through",
			html: "1oz rounds $55 each",
			want: "1oz rounds $55 each",
		},
		{
			name: "strikethrough content removed",
			html: "<p>10oz bar $580</p><p><del>5oz bar $295 SOLD</del></p><p>Shipping $7</p>",
			want: "10oz bar $580\nShipping $7",
		},
		{
			name: "s and strike tags removed",
			html: "live offer<br/><s>gone</s><br/><strike>also gone</strike>",
			want: "live offer",
		},
		{
			name: "line breaks preserved",
			html: "40% halves $7.75 each<br/>35% war nickels $3.10 each",
			want: "40% halves $7.75 each\n35% war nickels $3.10 each",
		},
		{
			name: "list items on separate lines",
			html: "<ul><li>kilo bar $1850</li><li>10oz bar $580</li></ul>",
			want: "kilo bar $1850\n10oz bar $580",
		},
		{
			name: "blank lines collapsed",
			html: "<p>a</p><p></p><p>  </p><p>b</p>",
			want: "a\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanBody(tt.html))
		})
	}
}

func TestIsBuyPost(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{title: "[WTS] Silver below melt!", want: false},
		{title: "[WTB] American Silver Eagles", want: true},
		{title: "[wtb] rounds", want: true},
		{title: "[WTT] my gold for your silver", want: true},
		{title: "Want to buy: junk silver", want: true},
		{title: "Stack audit, everything priced to move", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, isBuyPost(tt.title))
		})
	}
}
