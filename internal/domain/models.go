package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// ResultLine is a single "name: amount" pair read from generator output.
// Amount is kept as the formatted string the generator produced.
type ResultLine struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// ResultSet is an insertion-ordered mapping of due name to amount.
// Setting an existing name replaces its amount but keeps its position.
type ResultSet struct {
	names   []string
	amounts map[string]string
}

// NewResultSet creates an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{amounts: make(map[string]string)}
}

// Set records amount under name.
func (r *ResultSet) Set(name, amount string) {
	if r.amounts == nil {
		r.amounts = make(map[string]string)
	}
	if _, ok := r.amounts[name]; !ok {
		r.names = append(r.names, name)
	}
	r.amounts[name] = amount
}

// Get returns the amount recorded for name.
func (r *ResultSet) Get(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	amount, ok := r.amounts[name]
	return amount, ok
}

// Len returns the number of distinct names.
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Names returns the names in first-insertion order.
func (r *ResultSet) Names() []string {
	if r == nil {
		return []string{}
	}
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Lines returns the entries in first-insertion order.
func (r *ResultSet) Lines() []ResultLine {
	if r == nil {
		return []ResultLine{}
	}
	out := make([]ResultLine, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, ResultLine{Name: n, Amount: r.amounts[n]})
	}
	return out
}

// MarshalJSON encodes the set as a JSON object whose keys keep insertion order.
func (r *ResultSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.amounts[n])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RulesDocument is a persisted copy of the rules extracted from the tariff document.
type RulesDocument struct {
	ID        int64     `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	Model     string    `db:"model" json:"model"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
