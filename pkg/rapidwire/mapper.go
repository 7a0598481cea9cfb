package rapidwire

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

type fieldKind int

const (
	kindInt fieldKind = iota
	kindInt32
	kindString
	kindIntMap
	kindObject
	kindArray
	kindOptionalInt
	kindOptionalString
)

// field is a wire key and the JSON shape its value must have. Optional kinds may be absent or null.
type field struct {
	key  string
	kind fieldKind
}

func (f field) optional() bool {
	return f.kind == kindOptionalInt || f.kind == kindOptionalString
}

// schema describes what a record needs before it can be decoded: the type of every known key,
// plus the schemas of nested objects and arrays of objects.
type schema struct {
	name    string
	fields  []field
	objects map[string]schema
	arrays  map[string]schema
}

var (
	currencyInfoSchema = schema{
		name: "CurrencyInfo",
		fields: []field{
			{key: "id", kind: kindInt},
			{key: "symbol", kind: kindString},
			{key: "name", kind: kindString},
			{key: "supply", kind: kindInt},
			{key: "issuer_id", kind: kindOptionalInt},
			{key: "description", kind: kindOptionalString},
		},
	}
	stockInfoSchema = schema{
		name: "StockInfo",
		fields: []field{
			{key: "id", kind: kindInt},
			{key: "symbol", kind: kindString},
			{key: "name", kind: kindString},
			{key: "supply", kind: kindInt},
			{key: "issuer_id", kind: kindOptionalInt},
			{key: "industry", kind: kindOptionalString},
			{key: "overview", kind: kindOptionalString},
		},
	}
	balanceSchema = schema{
		name: "Balance",
		fields: []field{
			{key: "currencies", kind: kindIntMap},
			{key: "stocks", kind: kindIntMap},
		},
	}
	historyEntrySchema = schema{
		name: "HistoryEntry",
		fields: []field{
			{key: "type", kind: kindString},
			{key: "operation_type", kind: kindString},
			{key: "timestamp", kind: kindInt},
			{key: "source", kind: kindInt},
			{key: "dest", kind: kindInt},
			{key: "symbol", kind: kindString},
			{key: "amount", kind: kindInt},
		},
	}
	userOrderSchema = schema{
		name: "UserOrder",
		fields: []field{
			{key: "order_id", kind: kindInt},
			{key: "stock_symbol", kind: kindString},
			{key: "price", kind: kindInt},
			{key: "amount", kind: kindInt},
			{key: "timestamp", kind: kindInt},
		},
	}
	orderbookEntrySchema = schema{
		name: "OrderbookEntry",
		fields: []field{
			{key: "price", kind: kindInt},
			{key: "amount", kind: kindInt},
		},
	}
	orderbookSchema = schema{
		name: "Orderbook",
		fields: []field{
			{key: "stock_symbol", kind: kindString},
			{key: "orders", kind: kindArray},
		},
		arrays: map[string]schema{"orders": orderbookEntrySchema},
	}
	liquidityInfoSchema = schema{
		name: "LiquidityInfo",
		fields: []field{
			{key: "currency_symbol", kind: kindString},
			{key: "base_liquidity", kind: kindInt},
			{key: "pair_liquidity", kind: kindInt},
			{key: "total_lp_points", kind: kindInt},
		},
	}
	configSchema = schema{
		name: "Config",
		fields: []field{
			{key: "decimal_places", kind: kindInt32},
			{key: "base_currency", kind: kindObject},
		},
		objects: map[string]schema{"base_currency": currencyInfoSchema},
	}
	successResponseSchema = schema{
		name: "SuccessResponse",
		fields: []field{
			{key: "message", kind: kindString},
		},
	}
)

// decodeRecord maps a result onto T. A NoContent result yields a nil record and no error.
func decodeRecord[T any](res Result, s schema) (*T, error) {
	if res.NoContent {
		return nil, nil
	}

	if err := s.validate(s.name, res.Body); err != nil {
		return nil, err
	}

	var record T
	if err := unmarshalStrict(res.Body, &record); err != nil {
		return nil, mappingFailure(s.name, err)
	}

	return &record, nil
}

// decodeList maps a JSON array result onto []T, keeping the source order.
func decodeList[T any](res Result, s schema) ([]T, error) {
	if res.NoContent {
		return nil, nil
	}

	var items []json.RawMessage
	if err := unmarshalStrict(res.Body, &items); err != nil || items == nil {
		return nil, &MappingError{Path: s.name + "[]", Err: errNotAnArray}
	}

	records := make([]T, 0, len(items))
	for idx, item := range items {
		path := fmt.Sprintf("%s[%d]", s.name, idx)
		if err := s.validate(path, item); err != nil {
			return nil, err
		}

		var record T
		if err := unmarshalStrict(item, &record); err != nil {
			return nil, mappingFailure(path, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func (s schema) validate(path string, raw json.RawMessage) error {
	fields, err := objectFields(raw)
	if err != nil {
		return &MappingError{Path: path, Err: err}
	}

	for _, f := range s.fields {
		fieldPath := path + "." + f.key
		value, ok := fields[f.key]
		switch {
		case !ok && f.optional():
			continue
		case !ok:
			return &MappingError{Path: fieldPath, Err: errFieldMissing}
		case isNull(value) && f.optional():
			continue
		case isNull(value):
			return &MappingError{Path: fieldPath, Err: errFieldNull}
		}

		if f.kind == kindIntMap {
			if err := validateIntMap(fieldPath, value); err != nil {
				return err
			}
			continue
		}

		if err := checkKind(f.kind, value); err != nil {
			return &MappingError{Path: fieldPath, Err: err}
		}
	}

	for key, nested := range s.objects {
		value, ok := fields[key]
		if !ok || isNull(value) {
			continue
		}
		if err := nested.validate(path+"."+key, value); err != nil {
			return err
		}
	}

	for key, element := range s.arrays {
		value, ok := fields[key]
		if !ok || isNull(value) {
			continue
		}

		var items []json.RawMessage
		if err := unmarshalStrict(value, &items); err != nil {
			return &MappingError{Path: path + "." + key, Err: errNotAnArray}
		}
		for idx, item := range items {
			if err := element.validate(fmt.Sprintf("%s.%s[%d]", path, key, idx), item); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateIntMap checks a symbol keyed object of ledger amounts, naming the offending symbol.
func validateIntMap(path string, raw json.RawMessage) error {
	entries, err := objectFields(raw)
	if err != nil {
		return &MappingError{Path: path, Err: err}
	}

	symbols := make([]string, 0, len(entries))
	for symbol := range entries {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		if err := checkInt(entries[symbol], 64); err != nil {
			return &MappingError{Path: path + "." + symbol, Err: err}
		}
	}

	return nil
}

func checkKind(kind fieldKind, raw json.RawMessage) error {
	token := bytes.TrimSpace(raw)

	switch kind {
	case kindInt, kindOptionalInt:
		return checkInt(token, 64)
	case kindInt32:
		return checkInt(token, 32)
	case kindString, kindOptionalString:
		if jsonKind(token) != "string" {
			return fmt.Errorf("%w: got %s, want string", errTypeMismatch, jsonKind(token))
		}
	case kindObject:
		if jsonKind(token) != "object" {
			return errNotAnObject
		}
	case kindArray:
		if jsonKind(token) != "array" {
			return errNotAnArray
		}
	}

	return nil
}

// checkInt accepts only a bare JSON integer that fits in bitSize bits.
func checkInt(raw json.RawMessage, bitSize int) error {
	token := bytes.TrimSpace(raw)
	if kind := jsonKind(token); kind != "number" {
		return fmt.Errorf("%w: got %s, want integer", errTypeMismatch, kind)
	}

	_, err := strconv.ParseInt(string(token), 10, bitSize)
	if err == nil {
		return nil
	}

	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("%w: %s does not fit in int%d", errIntegerOutOfRange, token, bitSize)
	}

	return fmt.Errorf("%w: got number %s, want integer", errTypeMismatch, token)
}

func jsonKind(token []byte) string {
	if len(token) == 0 {
		return "nothing"
	}

	switch token[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

func objectFields(raw json.RawMessage) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errNotAnObject
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, errNotAnObject
	}

	return fields, nil
}

// unmarshalStrict decodes without float conversion of untyped numbers.
func unmarshalStrict(raw []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	return decoder.Decode(v)
}

func mappingFailure(path string, err error) *MappingError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		fieldPath := path
		if field := strings.Trim(typeErr.Field, "."); field != "" {
			fieldPath = path + "." + field
		}

		return &MappingError{
			Path: fieldPath,
			Err:  fmt.Errorf("%w: got %s, want %s", errTypeMismatch, typeErr.Value, typeErr.Type),
		}
	}

	return &MappingError{Path: path, Err: err}
}
