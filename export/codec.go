package export

import (
	"bytes"
	"encoding/json"
	"math"
	"slices"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/candid/errors"
	"github.com/wippyai/candid/value"
)

// Codec serializes Candid values in another data format, through their
// Native projection.
type Codec interface {
	// Name is the format name accepted by ByName.
	Name() string
	Marshal(v value.Value) ([]byte, error)
	MarshalArgs(args value.Args) ([]byte, error)
}

var (
	_ Codec = JSON{}
	_ Codec = CBOR{}
	_ Codec = Msgpack{}
	_ Codec = YAML{}
)

// JSON writes indented JSON. Non-finite floats, which JSON cannot carry,
// become the strings "nan", "inf" and "-inf". Blobs are base64 strings.
type JSON struct {
	Indent string
}

func (JSON) Name() string { return "json" }

func (c JSON) Marshal(v value.Value) ([]byte, error) {
	return c.marshal(Native(v))
}

func (c JSON) MarshalArgs(args value.Args) ([]byte, error) {
	return c.marshal(NativeArgs(args))
}

func (c JSON) marshal(x any) ([]byte, error) {
	x = finite(x)
	var (
		out []byte
		err error
	)
	if c.Indent != "" {
		out, err = json.MarshalIndent(x, "", c.Indent)
	} else {
		out, err = json.Marshal(x)
	}
	if err != nil {
		return nil, wrap("json", err)
	}
	return out, nil
}

// CBOR writes RFC 8949 core deterministic CBOR: map keys are sorted, so
// equal values always produce equal bytes.
type CBOR struct{}

var cborMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

func (CBOR) Name() string { return "cbor" }

func (CBOR) Marshal(v value.Value) ([]byte, error) {
	out, err := cborMode.Marshal(Native(v))
	if err != nil {
		return nil, wrap("cbor", err)
	}
	return out, nil
}

func (CBOR) MarshalArgs(args value.Args) ([]byte, error) {
	out, err := cborMode.Marshal(NativeArgs(args))
	if err != nil {
		return nil, wrap("cbor", err)
	}
	return out, nil
}

// Msgpack writes MessagePack with map keys sorted.
type Msgpack struct{}

func (Msgpack) Name() string { return "msgpack" }

func (c Msgpack) Marshal(v value.Value) ([]byte, error) {
	return c.marshal(Native(v))
}

func (c Msgpack) MarshalArgs(args value.Args) ([]byte, error) {
	return c.marshal(NativeArgs(args))
}

func (Msgpack) marshal(x any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(x); err != nil {
		return nil, wrap("msgpack", err)
	}
	return buf.Bytes(), nil
}

// YAML writes a YAML document.
type YAML struct{}

func (YAML) Name() string { return "yaml" }

func (c YAML) Marshal(v value.Value) ([]byte, error) {
	return c.marshal(Native(v))
}

func (c YAML) MarshalArgs(args value.Args) ([]byte, error) {
	return c.marshal(NativeArgs(args))
}

func (YAML) marshal(x any) ([]byte, error) {
	out, err := yaml.Marshal(finite(x))
	if err != nil {
		return nil, wrap("yaml", err)
	}
	return out, nil
}

var codecs = []Codec{JSON{Indent: "  "}, CBOR{}, Msgpack{}, YAML{}}

// ByName returns the codec for a format name, case insensitively.
func ByName(name string) (Codec, error) {
	for _, c := range codecs {
		if strings.EqualFold(c.Name(), name) {
			return c, nil
		}
	}
	return nil, errors.NotFound(errors.PhaseExport, "export format", name)
}

// Names lists the supported format names.
func Names() []string {
	names := make([]string, len(codecs))
	for i, c := range codecs {
		names[i] = c.Name()
	}
	slices.Sort(names)
	return names
}

// finite replaces non-finite floats with their Candid spelling.
func finite(x any) any {
	switch t := x.(type) {
	case float32:
		if f := float64(t); math.IsNaN(f) || math.IsInf(f, 0) {
			return floatText(f)
		}
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return floatText(t)
		}
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = finite(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = finite(e)
		}
		return out
	}
	return x
}

func floatText(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case f > 0:
		return "inf"
	}
	return "-inf"
}

func wrap(format string, err error) error {
	return errors.New(errors.PhaseExport, errors.KindUnsupported).
		Detail("cannot write %s", format).
		Cause(err).
		Build()
}
