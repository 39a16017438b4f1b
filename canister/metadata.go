package canister

import (
	"context"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/candid/errors"
	"github.com/wippyai/candid/text"
	"github.com/wippyai/candid/types"
)

// Well-known metadata section names, without their visibility prefix.
const (
	CandidService = "candid:service"
	CandidArgs    = "candid:args"
)

const sectionPrefix = "icp:"

// Visibility of a metadata section to other canisters and users.
type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"
)

// Section is one icp:* custom section of a canister module.
type Section struct {
	Name       string
	Visibility Visibility
	Data       []byte
}

// MethodKind is how a canister method is exported.
type MethodKind string

const (
	Query          MethodKind = "query"
	Update         MethodKind = "update"
	CompositeQuery MethodKind = "composite_query"
)

// Mode returns the func annotation matching k, if any.
func (k MethodKind) Mode() (types.FuncMode, bool) {
	switch k {
	case Query:
		return types.ModeQuery, true
	case CompositeQuery:
		return types.ModeCompositeQuery, true
	}
	return 0, false
}

// Method is a canister entry point found among the module's exports.
type Method struct {
	Name string
	Kind MethodKind
}

// Metadata is what a canister module says about itself.
type Metadata struct {
	Sections map[string]Section
	// Methods are sorted by name.
	Methods []Method
}

var methodPrefixes = []struct {
	prefix string
	kind   MethodKind
}{
	{"canister_composite_query ", CompositeQuery},
	{"canister_query ", Query},
	{"canister_update ", Update},
}

// ReadMetadata compiles a canister Wasm module and collects its icp:*
// custom sections and exported canister methods. The module is not
// instantiated.
func ReadMetadata(ctx context.Context, wasm []byte) (*Metadata, error) {
	cfg := wazero.NewRuntimeConfig().WithCustomSections(true)
	r := wazero.NewRuntimeWithConfig(ctx, cfg)
	defer r.Close(ctx)

	compiled, err := r.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.New(errors.PhaseMetadata, errors.KindMalformed).
			Detail("invalid wasm module").
			Cause(err).
			Build()
	}
	defer compiled.Close(ctx)

	md := &Metadata{Sections: make(map[string]Section)}
	for _, cs := range compiled.CustomSections() {
		rest, ok := strings.CutPrefix(cs.Name(), sectionPrefix)
		if !ok {
			continue
		}
		vis, name, ok := strings.Cut(rest, " ")
		if !ok || (Visibility(vis) != Public && Visibility(vis) != Private) {
			Logger().Debug("skipping custom section", zap.String("name", cs.Name()))
			continue
		}
		md.Sections[name] = Section{
			Name:       name,
			Visibility: Visibility(vis),
			Data:       slices.Clone(cs.Data()),
		}
	}

	for export := range compiled.ExportedFunctions() {
		for _, p := range methodPrefixes {
			if name, ok := strings.CutPrefix(export, p.prefix); ok {
				md.Methods = append(md.Methods, Method{Name: name, Kind: p.kind})
				break
			}
		}
	}
	slices.SortFunc(md.Methods, func(a, b Method) int {
		return strings.Compare(a.Name, b.Name)
	})

	Logger().Debug("read canister metadata",
		zap.Int("sections", len(md.Sections)),
		zap.Int("methods", len(md.Methods)))
	return md, nil
}

// Text returns the contents of a section as text.
func (m *Metadata) Text(name string) (string, error) {
	s, ok := m.Sections[name]
	if !ok {
		return "", errors.NotFound(errors.PhaseMetadata, "metadata section", name)
	}
	if !utf8.Valid(s.Data) {
		return "", errors.New(errors.PhaseMetadata, errors.KindMalformed).
			Path(name).Detail("section is not valid UTF-8").Build()
	}
	return string(s.Data), nil
}

// Service returns the Candid interface the canister publishes.
func (m *Metadata) Service() (string, error) {
	return m.Text(CandidService)
}

// InitArgs returns the Candid text of the canister's init arguments.
func (m *Metadata) InitArgs() (string, error) {
	return m.Text(CandidArgs)
}

// InitArgTypes parses the candid:args section as a list of types.
func (m *Metadata) InitArgTypes() ([]*types.Type, error) {
	s, err := m.InitArgs()
	if err != nil {
		return nil, err
	}
	return text.ParseTypes(strings.TrimSpace(s))
}

// Method looks up an exported method by name.
func (m *Metadata) Method(name string) (Method, bool) {
	i, ok := slices.BinarySearchFunc(m.Methods, name, func(a Method, n string) int {
		return strings.Compare(a.Name, n)
	})
	if !ok {
		return Method{}, false
	}
	return m.Methods[i], true
}
