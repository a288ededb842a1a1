package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Price guarda o valor de preço exatamente como foi enviado pelo cliente
// (número, texto numérico, null...). Pagamentos antigos chegaram com tipos
// diferentes, então a conversão acontece só na leitura, via Float.
type Price struct {
	raw json.RawMessage
}

// NewPrice cria um Price numérico.
func NewPrice(v float64) Price {
	return Price{raw: json.RawMessage(strconv.FormatFloat(v, 'f', -1, 64))}
}

// PriceFromRaw cria um Price a partir do JSON bruto armazenado.
func PriceFromRaw(raw []byte) Price {
	return Price{raw: append(json.RawMessage(nil), raw...)}
}

// Raw retorna o JSON bruto ("null" quando vazio).
func (p Price) Raw() json.RawMessage {
	if len(p.raw) == 0 {
		return json.RawMessage("null")
	}
	return p.raw
}

// Float converte o preço para float64. Aceita números JSON e textos numéricos;
// qualquer outra coisa (null, objeto, texto não numérico, NaN/Inf) retorna false.
func (p Price) Float() (float64, bool) {
	raw := bytes.TrimSpace(p.raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}

	text := string(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		text = strings.TrimSpace(s)
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// MinorUnits retorna o valor em centavos, arredondado (round(preço*100)).
func (p Price) MinorUnits() (int64, bool) {
	v, ok := p.Float()
	if !ok {
		return 0, false
	}
	return int64(math.Round(v * 100)), true
}

func (p Price) MarshalJSON() ([]byte, error) {
	return p.Raw(), nil
}

func (p *Price) UnmarshalJSON(b []byte) error {
	p.raw = append(p.raw[:0], b...)
	return nil
}

// Value grava o preço bruto numa coluna JSONB. Enviado como texto: o lib/pq
// codifica []byte como bytea, que o Postgres não aceita em jsonb.
func (p Price) Value() (driver.Value, error) {
	return string(p.Raw()), nil
}

// Scan lê o preço bruto de uma coluna JSONB.
func (p *Price) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		p.raw = nil
	case []byte:
		p.raw = append(json.RawMessage(nil), v...)
	case string:
		p.raw = json.RawMessage(v)
	default:
		return fmt.Errorf("tipo de preço não suportado: %T", src)
	}
	return nil
}
