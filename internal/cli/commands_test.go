package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const referenceHex = "4449444c00037e687501010104f4ffffff"

func TestParse(t *testing.T) {
	out, err := run(t, "parse", "128: nat64")
	require.NoError(t, err)
	assert.Equal(t, "128 : nat64\n", out)

	out, err = run(t, "parse", "--args", `(true, principal "2vxsx-fae", -12 : int32)`)
	require.NoError(t, err)
	assert.Equal(t, `(true, principal "2vxsx-fae", -12 : int32,)`+"\n", out)

	_, err = run(t, "parse", "record {")
	assert.ErrorContains(t, err, "line 1")
}

func TestType(t *testing.T) {
	out, err := run(t, "type", `(1, "a", vec { 1 : nat8 })`)
	require.NoError(t, err)
	assert.Equal(t, "(int, text, vec nat8)\n", out)
}

func TestEncode(t *testing.T) {
	out, err := run(t, "encode", `(true, principal "2vxsx-fae", -12 : int32)`)
	require.NoError(t, err)
	assert.Equal(t, referenceHex+"\n", out)

	out, err = run(t, "encode", "--types", "(nat16)", "300")
	require.NoError(t, err)
	assert.Equal(t, "4449444c00017a2c01\n", out)

	_, err = run(t, "encode", "--types", "(nat8)", "300")
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	out, err := run(t, "decode", referenceHex)
	require.NoError(t, err)
	assert.Equal(t, `(true, principal "2vxsx-fae", -12 : int32,)`+"\n", out)

	out, err = run(t, "decode", "--show-types", referenceHex)
	require.NoError(t, err)
	assert.Equal(t, "(bool, principal, int32)\n"+`(true, principal "2vxsx-fae", -12 : int32,)`+"\n", out)

	out, err = run(t, "decode", "--format", "json", referenceHex)
	require.NoError(t, err)
	assert.Equal(t, "[\n  true,\n  \"2vxsx-fae\",\n  -12\n]\n", out)

	_, err = run(t, "decode", "zz")
	assert.ErrorContains(t, err, "invalid hex")

	_, err = run(t, "decode", "--format", "xml", referenceHex)
	assert.Error(t, err)
}

func TestDecodeWithTypes(t *testing.T) {
	encoded, err := run(t, "encode", `(record { name = "alice" })`)
	require.NoError(t, err)

	out, err := run(t, "decode", "--types", "(record { name : text })", encoded)
	require.NoError(t, err)
	assert.Equal(t, `(record { name = "alice" },)`+"\n", out)
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	rawPath := filepath.Join(dir, "msg.bin")
	require.NoError(t, os.WriteFile(rawPath, []byte("DIDL\x00\x01\x71\x02hi"), 0o600))
	hexPath := filepath.Join(dir, "msg.hex")
	require.NoError(t, os.WriteFile(hexPath, []byte("4449444c 0001 7102 6869\n"), 0o600))

	for _, path := range []string{rawPath, hexPath} {
		out, err := run(t, "decode", "--file", path)
		require.NoError(t, err)
		assert.Equal(t, `("hi",)`+"\n", out)
	}
}

func TestPrincipal(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"principal", "parse", "2vxsx-fae"}, "04\n"},
		{[]string{"principal", "encode", "04"}, "2vxsx-fae\n"},
		{[]string{"principal", "anonymous"}, "2vxsx-fae\n"},
		{[]string{"principal", "management"}, "aaaaa-aa\n"},
	}
	for _, tt := range tests {
		t.Run(tt.args[1], func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	_, err := run(t, "principal", "parse", "not-a-principal")
	assert.Error(t, err)
}

func TestHash(t *testing.T) {
	out, err := run(t, "hash", "a", "ok", "name")
	require.NoError(t, err)
	assert.Equal(t, "a\t97\nok\t24860\nname\t1224700491\n", out)
}

func TestMeta(t *testing.T) {
	name := "icp:public candid:service"
	data := "service : {}"
	section := append([]byte{byte(len(name))}, name...)
	section = append(section, data...)

	wasm := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, 0x00, byte(len(section))}
	wasm = append(wasm, section...)
	path := filepath.Join(t.TempDir(), "canister.wasm")
	require.NoError(t, os.WriteFile(path, wasm, 0o600))

	out, err := run(t, "meta", path)
	require.NoError(t, err)
	assert.Equal(t, "Sections:\n  candid:service (public, 12 bytes)\nMethods:\n", out)

	out, err = run(t, "meta", "--service", path)
	require.NoError(t, err)
	assert.Equal(t, "service : {}\n", out)
}
