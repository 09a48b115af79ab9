package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{input: "Premium", want: CategoryPremium},
		{input: "bullion", want: CategoryBullion},
		{input: " BULLION ", want: CategoryBullion},
		{input: "", wantErr: true},
		{input: "numismatic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCandidateItemValidate(t *testing.T) {
	valid := CandidateItem{
		Name:        "1oz round",
		Category:    CategoryBullion,
		ListedPrice: 55,
		Quantity:    3,
		WeightOz:    1.0,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*CandidateItem)
	}{
		{name: "zero price", mutate: func(i *CandidateItem) { i.ListedPrice = 0 }},
		{name: "negative price", mutate: func(i *CandidateItem) { i.ListedPrice = -5 }},
		{name: "zero weight", mutate: func(i *CandidateItem) { i.WeightOz = 0 }},
		{name: "zero quantity", mutate: func(i *CandidateItem) { i.Quantity = 0 }},
		{name: "empty category", mutate: func(i *CandidateItem) { i.Category = "" }},
		{name: "bogus category", mutate: func(i *CandidateItem) { i.Category = "Rare" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := valid
			tt.mutate(&item)
			assert.Error(t, item.Validate())
		})
	}
}
