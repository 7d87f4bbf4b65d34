// Package chat implements the persistent assistant session: a STOMP
// session over a websocket with automatic reconnection, a typing
// indicator, location-aware message routing, and structured payload
// rendering.
package chat

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/haemic/bloodflow/internal/model"
)

// Wire message types used by the chat backend.
const (
	TypeJoin    = "JOIN"
	TypeMessage = "MESSAGE"
	TypeTyping  = "TYPING"
	TypeError   = "ERROR"
)

// Display formats hinted by the backend.
const (
	FormatString  = "STRING"
	FormatTable   = "TABLE"
	FormatReading = "READING"
)

// Envelope is the JSON shape shared by outbound and inbound chat
// messages.
type Envelope struct {
	Data          json.RawMessage `json:"data,omitempty"`
	Latitude      *float64        `json:"latitude,omitempty"`
	Longitude     *float64        `json:"longitude,omitempty"`
	Content       string          `json:"content"`
	Sender        string          `json:"sender,omitempty"`
	Type          string          `json:"type,omitempty"`
	DataType      string          `json:"dataType,omitempty"`
	DisplayFormat string          `json:"displayFormat,omitempty"`
	City          string          `json:"city,omitempty"`
	State         string          `json:"state,omitempty"`
}

// PayloadKind enumerates the known server message variants. The kind
// is decided once when a message is received, not re-inspected at
// render time.
type PayloadKind int

const (
	// KindPlainText is ordinary conversational text.
	KindPlainText PayloadKind = iota
	// KindBankList is a structured list of blood banks.
	KindBankList
	// KindStateList is a structured list of states.
	KindStateList
	// KindDistrictList is a structured list of districts.
	KindDistrictList
	// KindStockTable is a structured list of stock snapshots.
	KindStockTable
	// KindGenericTable is tabular data without a recognized shape.
	KindGenericTable
	// KindRaw is unparseable structured data rendered verbatim.
	KindRaw
)

// Table holds generic tabular data extracted from a payload.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Payload is the classified content of one inbound message. Exactly
// the fields implied by Kind are populated.
type Payload struct {
	Text      string
	Raw       string
	States    []model.State
	Districts []model.District
	Stocks    []model.BloodStock
	Table     Table
	Kind      PayloadKind
}

// Message is one entry in the session's visible log.
type Message struct {
	Timestamp time.Time
	Sender    string
	Type      string
	Payload   Payload
	System    bool
}

// shapes probed while classifying structured data.
type structuredData struct {
	BloodBanks []json.RawMessage  `json:"bloodBanks"`
	States     []model.State      `json:"states"`
	Districts  []model.District   `json:"districts"`
	Stocks     []model.BloodStock `json:"stocks"`
}

// Classify turns an inbound envelope into a tagged payload. Structured
// data is recognized by its well-known array markers (bloodBanks,
// states, districts, stocks); anything else tabulates generically or
// falls back to raw JSON, then plain text.
func Classify(env Envelope) Payload {
	switch env.DisplayFormat {
	case FormatString, FormatReading:
		if env.Content != "" {
			return Payload{Kind: KindPlainText, Text: env.Content}
		}
	}

	if len(env.Data) > 0 {
		return classifyData(env.Data)
	}

	// Some backends embed JSON inside the content string.
	if raw := embeddedJSON(env.Content); raw != nil {
		return classifyData(raw)
	}

	return Payload{Kind: KindPlainText, Text: env.Content}
}

func classifyData(data json.RawMessage) Payload {
	var probe structuredData
	if err := json.Unmarshal(data, &probe); err == nil {
		switch {
		case probe.BloodBanks != nil:
			return Payload{Kind: KindBankList, Table: tabulate(probe.BloodBanks)}
		case probe.States != nil:
			return Payload{Kind: KindStateList, States: probe.States}
		case probe.Districts != nil:
			return Payload{Kind: KindDistrictList, Districts: probe.Districts}
		case probe.Stocks != nil:
			return Payload{Kind: KindStockTable, Stocks: probe.Stocks}
		}
	}

	// Array of objects renders as a generic table, a single object as
	// key/value rows.
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err == nil {
		return Payload{Kind: KindGenericTable, Table: tabulate(rows)}
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil {
		return Payload{Kind: KindGenericTable, Table: keyValueTable(obj)}
	}

	return Payload{Kind: KindRaw, Raw: string(data)}
}

// embeddedJSON extracts the first JSON object or array embedded in a
// content string, or nil when there is none.
func embeddedJSON(content string) json.RawMessage {
	start := strings.IndexAny(content, "{[")
	if start < 0 {
		return nil
	}
	candidate := strings.TrimSpace(content[start:])
	if !json.Valid([]byte(candidate)) {
		return nil
	}
	return json.RawMessage(candidate)
}

// tabulate builds a table from an array of JSON objects. Columns come
// from the union of keys, sorted for a stable layout.
func tabulate(items []json.RawMessage) Table {
	seen := make(map[string]struct{})
	decoded := make([]map[string]any, 0, len(items))
	for _, item := range items {
		var obj map[string]any
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		decoded = append(decoded, obj)
		for k := range obj {
			seen[k] = struct{}{}
		}
	}

	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	table := Table{Columns: columns}
	for _, obj := range decoded {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = formatCell(obj[col])
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func keyValueTable(obj map[string]json.RawMessage) Table {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := Table{Columns: []string{"Field", "Value"}}
	for _, k := range keys {
		var v any
		_ = json.Unmarshal(obj[k], &v)
		table.Rows = append(table.Rows, []string{k, formatCell(v)})
	}
	return table
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return jsonNumber(val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}

func jsonNumber(f float64) string {
	encoded, _ := json.Marshal(f)
	return string(encoded)
}
