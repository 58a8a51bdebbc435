// Command tomltestdecoder adapts this module to the toml-test compliance
// harness (github.com/toml-lang/toml-test/v2): it reads a TOML document from
// stdin and writes the harness's tagged-JSON representation to stdout, the
// same protocol maurice-toml/cmd/decoder and pelletier-go-toml/testsuite
// speak against their own decoders.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"

	toml "github.com/2colours/smol-toml"
)

func main() {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading stdin: %v\n", err)
		os.Exit(1)
	}

	doc, err := toml.Parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	out, err := json.Marshal(tableToTagged(doc.Table))
	if err != nil {
		log.Fatalf("error marshaling JSON: %v", err)
	}
	fmt.Println(string(out))
}

func tableToTagged(t *toml.Table) map[string]any {
	result := make(map[string]any, t.Len())
	for _, k := range t.Keys() {
		v, _ := t.Get(k)
		result[k] = valueToTagged(v)
	}
	return result
}

func valueToTagged(v *toml.Value) any {
	switch v.Kind() {
	case toml.KindString:
		s, _ := v.AsString()
		return tagged("string", s)
	case toml.KindInteger:
		i, _ := v.AsInt64()
		return tagged("integer", strconv.FormatInt(i, 10))
	case toml.KindFloat:
		f, _ := v.AsFloat64()
		return tagged("float", formatFloat(f))
	case toml.KindBoolean:
		b, _ := v.AsBool()
		return tagged("bool", strconv.FormatBool(b))
	case toml.KindDateTime:
		dt, _ := v.AsDateTime()
		return datetimeToTagged(dt)
	case toml.KindArray:
		elems, _ := v.AsArray()
		out := make([]any, 0, len(elems))
		for _, e := range elems {
			out = append(out, valueToTagged(e))
		}
		return out
	case toml.KindTable:
		sub, _ := v.AsTable()
		return tableToTagged(sub)
	default:
		return nil
	}
}

func datetimeToTagged(dt toml.DateTime) map[string]any {
	switch dt.Kind {
	case toml.DateOnly:
		return tagged("date-local", dt.String())
	case toml.TimeOnly:
		return tagged("time-local", dt.String())
	case toml.DateTimeLocal:
		return tagged("datetime-local", dt.String())
	default:
		return tagged("datetime", dt.String())
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

func tagged(kind, value string) map[string]any {
	return map[string]any{"type": kind, "value": value}
}
