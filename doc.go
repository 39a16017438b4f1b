// Package candid implements Candid, the interface description language of
// the Internet Computer.
//
// The library is organized into packages with distinct responsibilities:
//
//	candid/          Root package with one-call conveniences
//	├── value/       Dynamic Candid values, inference and printing
//	├── types/       Candid types and field id hashing
//	├── text/        Candid text format parser and printer
//	├── wire/        Binary wire format (DIDL) encoder and decoder
//	├── principal/   Principal identifiers and their textual form
//	├── numeric/     Number literal parsing and range checks
//	├── leb128/      LEB128 integer encoding
//	├── export/      Projection of values into JSON, CBOR, MessagePack and YAML
//	├── canister/    Candid metadata of canister Wasm modules
//	└── errors/      Structured error types
//
// # Quick Start
//
// Encode an argument list written in Candid text:
//
//	data, err := candid.EncodeText(`(42 : nat8, record { name = "alice" })`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%x\n", data)
//
// Decode a message back to text:
//
//	s, err := candid.DecodeText(data)
//	fmt.Println(s) // (42 : nat8, record { 1224700491 = "alice" },)
//
// The wire format only holds label hashes, so decoded record fields carry
// numeric ids. DecodeWithTypes restores the names:
//
//	ts, _ := candid.ParseTypes(`(nat8, record { name : text })`)
//	args, err := candid.DecodeWithTypes(data, ts)
//
// # Errors
//
// Every failure is an *errors.Error carrying the phase it happened in and
// its kind. Use errors.IsKind to branch on the kind:
//
//	if errors.IsKind(err, errors.KindMalformed) {
//	    // reject the message
//	}
package candid
