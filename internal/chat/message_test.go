package chat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_PlainText(t *testing.T) {
	p := Classify(Envelope{Content: "Hello there", DisplayFormat: FormatString})
	assert.Equal(t, KindPlainText, p.Kind)
	assert.Equal(t, "Hello there", p.Text)
}

func TestClassify_ReadingIsPlainText(t *testing.T) {
	p := Classify(Envelope{Content: "O positive is available.", DisplayFormat: FormatReading})
	assert.Equal(t, KindPlainText, p.Kind)
}

func TestClassify_BankList(t *testing.T) {
	data := json.RawMessage(`{"bloodBanks": [
		{"name": "Apollo Blood Center", "city": "Chennai", "units": 12},
		{"name": "Red Cross", "city": "Delhi", "units": 4}
	]}`)
	p := Classify(Envelope{Data: data, DisplayFormat: FormatTable})

	require.Equal(t, KindBankList, p.Kind)
	assert.Equal(t, []string{"city", "name", "units"}, p.Table.Columns)
	require.Len(t, p.Table.Rows, 2)
	assert.Equal(t, []string{"Chennai", "Apollo Blood Center", "12"}, p.Table.Rows[0])
}

func TestClassify_StateList(t *testing.T) {
	data := json.RawMessage(`{"states": [{"stateId": "12", "stateName": "Maharashtra"}]}`)
	p := Classify(Envelope{Data: data})

	require.Equal(t, KindStateList, p.Kind)
	require.Len(t, p.States, 1)
	assert.Equal(t, "Maharashtra", p.States[0].StateName)
}

func TestClassify_DistrictList(t *testing.T) {
	data := json.RawMessage(`{"districts": [{"districtId": "3", "districtName": "Pune"}]}`)
	p := Classify(Envelope{Data: data})

	require.Equal(t, KindDistrictList, p.Kind)
	assert.Equal(t, "Pune", p.Districts[0].DistrictName)
}

func TestClassify_GenericArrayTabulates(t *testing.T) {
	data := json.RawMessage(`[{"a": 1, "b": "x"}, {"a": 2}]`)
	p := Classify(Envelope{Data: data})

	require.Equal(t, KindGenericTable, p.Kind)
	assert.Equal(t, []string{"a", "b"}, p.Table.Columns)
	assert.Equal(t, []string{"2", ""}, p.Table.Rows[1])
}

func TestClassify_ObjectBecomesKeyValueTable(t *testing.T) {
	data := json.RawMessage(`{"donors": 41, "camps": 3}`)
	p := Classify(Envelope{Data: data})

	require.Equal(t, KindGenericTable, p.Kind)
	assert.Equal(t, []string{"Field", "Value"}, p.Table.Columns)
	assert.Equal(t, [][]string{{"camps", "3"}, {"donors", "41"}}, p.Table.Rows)
}

func TestClassify_EmbeddedJSONInContent(t *testing.T) {
	p := Classify(Envelope{Content: `Here you go: {"states": [{"stateId": "1", "stateName": "Goa"}]}`})
	assert.Equal(t, KindStateList, p.Kind)
}

func TestClassify_UnparseableDataIsRaw(t *testing.T) {
	p := Classify(Envelope{Data: json.RawMessage(`"just a string"`)})
	assert.Equal(t, KindRaw, p.Kind)
	assert.Equal(t, `"just a string"`, p.Raw)
}

func TestNeedsLocation(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"blood banks near me", true},
		{"any camps NEARBY?", true},
		{"banks close to me please", true},
		{"what's around me", true},
		{"blood banks in Chennai", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsLocation(tt.text))
		})
	}
}
